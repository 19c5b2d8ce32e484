package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartcore/internal/db"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/port"
	"golang.org/x/text/currency"
)

type catalogRepository struct {
	q *db.Queries
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogLookup {
	return &catalogRepository{
		q: db.New(pool),
	}
}

func (r *catalogRepository) GetStoreBySlug(ctx context.Context, slug string) (domain.Store, error) {
	if slug == "" {
		return domain.Store{}, fmt.Errorf("slug is empty")
	}

	row, err := r.q.GetApprovedStoreBySlug(ctx, slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Store{}, fmt.Errorf("store[%s]: %w", slug, domain.ErrStoreNotFound)
	}
	if err != nil {
		return domain.Store{}, fmt.Errorf("q.GetApprovedStoreBySlug: %w", err)
	}

	return domain.Store{
		ID:       row.ID,
		Slug:     row.Slug,
		Currency: row.Currency,
	}, nil
}

func (r *catalogRepository) GetProductForCart(ctx context.Context, storeID, productID uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetStoreProduct(ctx, db.GetStoreProductParams{
		StoreID: storeID,
		ID:      productID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetStoreProduct: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	return domain.Product{
		ID:           row.ID,
		StoreID:      row.StoreID,
		Name:         row.Name,
		Active:       row.IsActive,
		BasePrice:    domain.Money{Amount: row.BasePrice, Currency: parsedCurrency},
		HasVariants:  row.HasVariants,
		MainImageURL: row.MainImageUrl,
	}, nil
}

func (r *catalogRepository) GetVariant(ctx context.Context, productID, variantID uuid.UUID) (domain.Variant, error) {
	row, err := r.q.GetProductVariant(ctx, db.GetProductVariantParams{
		ProductID: productID,
		ID:        variantID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Variant{}, fmt.Errorf("variant[%s]: %w", variantID, domain.ErrVariantInvalid)
	}
	if err != nil {
		return domain.Variant{}, fmt.Errorf("q.GetProductVariant: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	return domain.Variant{
		ID:         row.ID,
		ProductID:  row.ProductID,
		PriceDelta: domain.Money{Amount: row.PriceDelta, Currency: parsedCurrency},
		Stock:      int(row.Stock),
		SKU:        deref(row.Sku),
		Size:       deref(row.Size),
		Color:      deref(row.Color),
	}, nil
}
