package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
)

// CatalogLookup is the read-only view of the catalog the cart needs.
//
// GetStoreBySlug returns domain.ErrStoreNotFound for unknown or unapproved stores.
// GetProductForCart returns domain.ErrProductNotFound when the product does not
// exist in the store; inactive products are returned with Active=false.
// GetVariant returns domain.ErrVariantInvalid when the variant is not part of the product.
type CatalogLookup interface {
	GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error)
	GetProductForCart(ctx context.Context, storeID, productID uuid.UUID) (domain.Product, error)
	GetVariant(ctx context.Context, productID, variantID uuid.UUID) (domain.Variant, error)
}
