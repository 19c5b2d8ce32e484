package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/port"
	"go.uber.org/zap"
)

// BeginCheckout freezes the actor's active cart while payment is in progress and
// returns it, lines included, so the caller can snapshot an order from it.
func (e *Engine) BeginCheckout(ctx context.Context, storeID uuid.UUID, actor domain.Actor) (domain.Cart, error) {
	if actor.IsZero() {
		return domain.Cart{}, domain.ErrActorRequired
	}

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := e.resolveCart(ctx, repo, storeID, actor, st)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("cart[%s]: %w", cart.ID, domain.ErrCartEmpty)
		}

		if err := e.transition(ctx, repo, &cart, domain.CartStatusCheckoutPending); err != nil {
			return err
		}

		st.cart = cart
		st.emit(e.event(domain.CartCheckoutStarted, cart))
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("begin checkout: %w", err)
	}

	return st.cart, nil
}

// CompleteCheckout marks the owner's checkout-pending cart completed once payment
// is confirmed.
func (e *Engine) CompleteCheckout(ctx context.Context, storeID uuid.UUID, owner domain.Actor) (domain.Cart, error) {
	if owner.IsZero() {
		return domain.Cart{}, domain.ErrActorRequired
	}

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, ok, err := repo.GetCartByStatus(ctx, storeID, owner.Owner(), domain.CartStatusCheckoutPending)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrCartNotFound
		}

		if err := e.transition(ctx, repo, &cart, domain.CartStatusCompleted); err != nil {
			return err
		}

		st.cart = cart
		st.emit(e.event(domain.CartCompleted, cart))
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("complete checkout: %w", err)
	}

	return st.cart, nil
}

// AbandonCart is called by the external cleanup job for stale active carts.
func (e *Engine) AbandonCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := reload(ctx, repo, cartID)
		if err != nil {
			return err
		}

		if err := e.transition(ctx, repo, &cart, domain.CartStatusAbandoned); err != nil {
			return err
		}

		st.cart = cart
		st.emit(e.event(domain.CartAbandoned, cart))
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("abandon cart: %w", err)
	}

	return st.cart, nil
}

func (e *Engine) transition(ctx context.Context, repo port.CartRepository, cart *domain.Cart, to domain.CartStatus) error {
	from := cart.Status
	if err := cart.Transition(to, e.now()); err != nil {
		return err
	}
	if err := repo.SetStatus(ctx, cart.ID, from, to, cart.UpdatedAt); err != nil {
		return err
	}

	e.logger.Info("cart status changed",
		zap.Stringer("cart_id", cart.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return nil
}
