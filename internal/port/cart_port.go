package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
)

// CartRepository reads and writes carts and their lines. Lookups report absence
// through the bool result; writes that break a uniqueness constraint return
// domain.ErrDuplicate and leave the surrounding transaction usable.
type CartRepository interface {
	GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, bool, error)
	GetActiveCart(ctx context.Context, storeID uuid.UUID, owner domain.Actor) (domain.Cart, bool, error)
	GetCartByStatus(ctx context.Context, storeID uuid.UUID, owner domain.Actor, status domain.CartStatus) (domain.Cart, bool, error)
	CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	SetOwner(ctx context.Context, cartID uuid.UUID, owner domain.Actor, at time.Time) error
	SetStatus(ctx context.Context, cartID uuid.UUID, from, to domain.CartStatus, at time.Time) error
	Touch(ctx context.Context, cartID uuid.UUID, at time.Time) error

	GetLine(ctx context.Context, cartID, productID uuid.UUID, variantID uuid.NullUUID) (domain.CartItem, bool, error)
	GetItem(ctx context.Context, cartID, itemID uuid.UUID) (domain.CartItem, bool, error)
	InsertItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	MoveItem(ctx context.Context, itemID, fromCartID, toCartID uuid.UUID, at time.Time) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)
}

// CartStore runs fn inside a single transaction; fn's error rolls everything back.
type CartStore interface {
	WithinTx(ctx context.Context, fn func(repo CartRepository) error) error
}
