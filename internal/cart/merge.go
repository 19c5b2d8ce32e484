package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/port"
	"github.com/nikolayk812/cartcore/internal/presenter"
	"go.uber.org/zap"
)

// MergeGuestIntoUser folds the guest's active cart into the user's active cart.
// Running it again after success finds no active guest cart and is a no-op.
func (e *Engine) MergeGuestIntoUser(ctx context.Context, storeID uuid.UUID, userID, guestToken string) (presenter.CartView, error) {
	if userID == "" {
		return presenter.CartView{}, fmt.Errorf("user: %w", domain.ErrActorRequired)
	}
	if guestToken == "" {
		return presenter.CartView{}, fmt.Errorf("guest token: %w", domain.ErrActorRequired)
	}

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := e.mergeTx(ctx, repo, storeID, userID, guestToken, st)
		if err != nil {
			return err
		}
		st.cart = cart
		return nil
	})
	if err != nil {
		return presenter.CartView{}, fmt.Errorf("merge guest cart: %w", err)
	}

	return presenter.Present(&st.cart), nil
}

func (e *Engine) mergeTx(ctx context.Context, repo port.CartRepository, storeID uuid.UUID, userID, guestToken string, st *txState) (domain.Cart, error) {
	user := domain.User(userID)

	// guest cart is locked first, so concurrent merges of the same guest serialize
	guestCart, ok, err := repo.GetActiveCart(ctx, storeID, domain.Guest(guestToken))
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return e.activeCart(ctx, repo, storeID, user, st)
	}

	userCart, ok, err := repo.GetActiveCart(ctx, storeID, user)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		claimed, err := e.claim(ctx, repo, guestCart, user, st)
		if !errors.Is(err, domain.ErrDuplicate) {
			return claimed, err
		}

		// the user's cart appeared between the read and the claim
		userCart, ok, err = repo.GetActiveCart(ctx, storeID, user)
		if err != nil {
			return domain.Cart{}, err
		}
		if !ok {
			return domain.Cart{}, domain.ErrConcurrencyConflict
		}
		e.logger.Warn("concurrent claim recovered",
			zap.Stringer("store_id", storeID),
			zap.Stringer("cart_id", userCart.ID))
	}

	return e.merge(ctx, repo, guestCart, userCart, st)
}

// claim hands the guest cart to the user unchanged.
func (e *Engine) claim(ctx context.Context, repo port.CartRepository, guestCart domain.Cart, user domain.Actor, st *txState) (domain.Cart, error) {
	now := e.now()
	if err := repo.SetOwner(ctx, guestCart.ID, user, now); err != nil {
		return domain.Cart{}, err
	}

	guestCart.Owner = user
	guestCart.UpdatedAt = now

	e.logger.Info("guest cart claimed",
		zap.Stringer("store_id", guestCart.StoreID),
		zap.Stringer("cart_id", guestCart.ID))
	st.emit(e.event(domain.CartClaimed, guestCart))

	return guestCart, nil
}

// merge sums matching lines into the user cart, reparents the rest and marks the
// guest cart merged.
func (e *Engine) merge(ctx context.Context, repo port.CartRepository, guestCart, userCart domain.Cart, st *txState) (domain.Cart, error) {
	now := e.now()

	for _, gi := range guestCart.Items {
		line, ok := userCart.FindLine(gi.ProductID, gi.VariantID)
		if !ok {
			if err := repo.MoveItem(ctx, gi.ID, guestCart.ID, userCart.ID, now); err != nil {
				return domain.Cart{}, err
			}
			continue
		}

		line.Quantity += gi.Quantity
		line.UpdatedAt = now
		if _, err := repo.UpdateItem(ctx, line); err != nil {
			return domain.Cart{}, err
		}
		if _, err := repo.DeleteItem(ctx, guestCart.ID, gi.ID); err != nil {
			return domain.Cart{}, err
		}
	}

	if err := guestCart.Transition(domain.CartStatusMerged, now); err != nil {
		return domain.Cart{}, err
	}
	if err := repo.SetStatus(ctx, guestCart.ID, domain.CartStatusActive, domain.CartStatusMerged, now); err != nil {
		return domain.Cart{}, err
	}
	if err := repo.Touch(ctx, userCart.ID, now); err != nil {
		return domain.Cart{}, err
	}

	merged, err := reload(ctx, repo, userCart.ID)
	if err != nil {
		return domain.Cart{}, err
	}

	e.logger.Info("guest cart merged",
		zap.Stringer("store_id", merged.StoreID),
		zap.Stringer("cart_id", merged.ID),
		zap.Stringer("source_cart_id", guestCart.ID),
		zap.Int("lines", len(guestCart.Items)))

	event := e.event(domain.CartMerged, merged)
	source := guestCart.ID
	event.SourceCart = &source
	st.emit(event)

	return merged, nil
}
