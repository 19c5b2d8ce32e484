// Package cart owns cart identity and concurrency: one active cart per
// (store, actor), guest to user merge, and race-safe line mutations.
package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/port"
	"go.uber.org/zap"
)

type Engine struct {
	store     port.CartStore
	catalog   port.CatalogLookup
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Engine)

func WithPublisher(p port.EventPublisher) Option {
	return func(e *Engine) { e.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(store port.CartStore, catalog port.CatalogLookup, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		catalog: catalog,
		logger:  zap.NewNop(),
		now: func() time.Time {
			// postgres keeps microseconds
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// txState collects what a transaction produced; events are published only
// after the transaction committed.
type txState struct {
	cart   domain.Cart
	events []domain.CartEvent
}

func (s *txState) emit(event domain.CartEvent) {
	s.events = append(s.events, event)
}

func (e *Engine) publish(ctx context.Context, events []domain.CartEvent) {
	if e.publisher == nil {
		return
	}
	for _, event := range events {
		if err := e.publisher.Publish(ctx, event.CartID.String(), event); err != nil {
			e.logger.Error("publish cart event",
				zap.String("type", string(event.Type)),
				zap.Stringer("cart_id", event.CartID),
				zap.Error(err))
		}
	}
}

func (e *Engine) event(t domain.CartEventType, cart domain.Cart) domain.CartEvent {
	return domain.CartEvent{
		Type:       t,
		CartID:     cart.ID,
		StoreID:    cart.StoreID,
		OwnerKind:  cart.Owner.Kind().String(),
		OccurredAt: e.now(),
	}
}

func itemEvent(event domain.CartEvent, item domain.CartItem) domain.CartEvent {
	itemID, productID := item.ID, item.ProductID
	event.ItemID = &itemID
	event.ProductID = &productID
	event.Quantity = item.Quantity
	return event
}

// resolveCart returns the actor's active cart, creating it when needed. A user
// actor still carrying a guest token has that guest cart folded in first.
func (e *Engine) resolveCart(ctx context.Context, repo port.CartRepository, storeID uuid.UUID, actor domain.Actor, st *txState) (domain.Cart, error) {
	if guestToken, ok := actor.CarriedGuest(); ok {
		return e.mergeTx(ctx, repo, storeID, actor.ID(), guestToken, st)
	}
	return e.activeCart(ctx, repo, storeID, actor.Owner(), st)
}

func (e *Engine) activeCart(ctx context.Context, repo port.CartRepository, storeID uuid.UUID, owner domain.Actor, st *txState) (domain.Cart, error) {
	cart, out, err := getOrCreate(ctx,
		func(ctx context.Context) (domain.Cart, bool, error) {
			return repo.GetActiveCart(ctx, storeID, owner)
		},
		func(ctx context.Context) (domain.Cart, error) {
			now := e.now()
			return repo.CreateCart(ctx, domain.Cart{
				ID:        uuid.New(),
				StoreID:   storeID,
				Owner:     owner,
				Status:    domain.CartStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			})
		},
	)
	if err != nil {
		return domain.Cart{}, err
	}

	switch out {
	case created:
		e.logger.Info("cart created",
			zap.Stringer("store_id", storeID),
			zap.Stringer("cart_id", cart.ID),
			zap.Stringer("owner_kind", owner.Kind()))
		st.emit(e.event(domain.CartCreated, cart))
	case recovered:
		e.logger.Warn("concurrent cart creation recovered",
			zap.Stringer("store_id", storeID),
			zap.Stringer("cart_id", cart.ID),
			zap.Stringer("owner_kind", owner.Kind()))
	}

	return cart, nil
}

// reload re-reads a cart with its lines after mutations within the transaction.
func reload(ctx context.Context, repo port.CartRepository, cartID uuid.UUID) (domain.Cart, error) {
	cart, ok, err := repo.GetCart(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return cart, nil
}
