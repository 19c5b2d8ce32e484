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

func (e *Engine) GetActiveCart(ctx context.Context, storeID uuid.UUID, actor domain.Actor) (presenter.CartView, error) {
	if actor.IsZero() {
		return presenter.CartView{}, domain.ErrActorRequired
	}

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := e.resolveCart(ctx, repo, storeID, actor, st)
		if err != nil {
			return err
		}
		st.cart = cart
		return nil
	})
	if err != nil {
		return presenter.CartView{}, fmt.Errorf("get active cart: %w", err)
	}

	return presenter.Present(&st.cart), nil
}

type AddItemInput struct {
	ProductID uuid.UUID
	VariantID uuid.NullUUID
	Quantity  int
}

func (e *Engine) AddItem(ctx context.Context, storeID uuid.UUID, actor domain.Actor, in AddItemInput) (presenter.CartView, error) {
	if actor.IsZero() {
		return presenter.CartView{}, domain.ErrActorRequired
	}
	if in.Quantity < 1 {
		return presenter.CartView{}, fmt.Errorf("quantity[%d]: %w", in.Quantity, domain.ErrInvalidQuantity)
	}

	product, variant, err := e.resolveProduct(ctx, storeID, in)
	if err != nil {
		return presenter.CartView{}, err
	}

	if variant != nil {
		if err := domain.CheckStock(variant.Stock, in.Quantity); err != nil {
			return presenter.CartView{}, err
		}
	}

	price := domain.UnitPrice(product, variant)
	snapshot := domain.SnapshotOf(product, variant)

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := e.resolveCart(ctx, repo, storeID, actor, st)
		if err != nil {
			return err
		}

		line, out, err := getOrCreate(ctx,
			func(ctx context.Context) (domain.CartItem, bool, error) {
				return repo.GetLine(ctx, cart.ID, in.ProductID, in.VariantID)
			},
			func(ctx context.Context) (domain.CartItem, error) {
				now := e.now()
				return repo.InsertItem(ctx, domain.CartItem{
					ID:        uuid.New(),
					CartID:    cart.ID,
					ProductID: in.ProductID,
					VariantID: in.VariantID,
					Quantity:  in.Quantity,
					Price:     price,
					Snapshot:  snapshot,
					CreatedAt: now,
					UpdatedAt: now,
				})
			},
		)
		if err != nil {
			return err
		}

		if out == recovered {
			e.logger.Warn("concurrent line creation recovered",
				zap.Stringer("cart_id", cart.ID),
				zap.Stringer("product_id", in.ProductID))
		}

		if out != created {
			newQty := line.Quantity + in.Quantity
			if variant != nil {
				if err := domain.CheckStock(variant.Stock, newQty); err != nil {
					return err
				}
			}

			line.Quantity = newQty
			line.Price = price
			line.Snapshot = snapshot
			line.UpdatedAt = e.now()

			if line, err = repo.UpdateItem(ctx, line); err != nil {
				return err
			}
		}

		if err := repo.Touch(ctx, cart.ID, e.now()); err != nil {
			return err
		}

		if st.cart, err = reload(ctx, repo, cart.ID); err != nil {
			return err
		}
		st.emit(itemEvent(e.event(domain.CartItemAdded, st.cart), line))
		return nil
	})
	if err != nil {
		return presenter.CartView{}, fmt.Errorf("add item: %w", err)
	}

	return presenter.Present(&st.cart), nil
}

// resolveProduct validates the product and variant selection against the catalog.
func (e *Engine) resolveProduct(ctx context.Context, storeID uuid.UUID, in AddItemInput) (domain.Product, *domain.Variant, error) {
	product, err := e.catalog.GetProductForCart(ctx, storeID, in.ProductID)
	if err != nil {
		return domain.Product{}, nil, fmt.Errorf("catalog.GetProductForCart: %w", err)
	}
	if !product.Active || product.StoreID != storeID {
		return domain.Product{}, nil, fmt.Errorf("product[%s]: %w", in.ProductID, domain.ErrProductNotFound)
	}

	if !product.HasVariants {
		if in.VariantID.Valid {
			return domain.Product{}, nil, fmt.Errorf("product[%s]: %w", in.ProductID, domain.ErrVariantNotApplicable)
		}
		return product, nil, nil
	}

	if !in.VariantID.Valid {
		return domain.Product{}, nil, fmt.Errorf("product[%s]: %w", in.ProductID, domain.ErrVariantRequired)
	}

	variant, err := e.catalog.GetVariant(ctx, product.ID, in.VariantID.UUID)
	if err != nil {
		return domain.Product{}, nil, fmt.Errorf("catalog.GetVariant: %w", err)
	}
	if variant.ProductID != product.ID {
		return domain.Product{}, nil, fmt.Errorf("variant[%s]: %w", in.VariantID.UUID, domain.ErrVariantInvalid)
	}

	return product, &variant, nil
}

// UpdateItem sets a line's quantity; zero removes the line.
func (e *Engine) UpdateItem(ctx context.Context, storeID uuid.UUID, actor domain.Actor, itemID uuid.UUID, quantity int) (presenter.CartView, error) {
	if actor.IsZero() {
		return presenter.CartView{}, domain.ErrActorRequired
	}
	if quantity < 0 {
		return presenter.CartView{}, fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := e.resolveCart(ctx, repo, storeID, actor, st)
		if err != nil {
			return err
		}

		item, ok, err := repo.GetItem(ctx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemNotFound)
		}

		if quantity == 0 {
			if _, err := repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
				return err
			}
			item.Quantity = 0
			st.emit(itemEvent(e.event(domain.CartItemRemoved, cart), item))
		} else {
			if err := e.checkLineStock(ctx, item, quantity); err != nil {
				return err
			}

			item.Quantity = quantity
			item.UpdatedAt = e.now()
			if item, err = repo.UpdateItem(ctx, item); err != nil {
				return err
			}
			st.emit(itemEvent(e.event(domain.CartItemUpdated, cart), item))
		}

		if err := repo.Touch(ctx, cart.ID, e.now()); err != nil {
			return err
		}

		st.cart, err = reload(ctx, repo, cart.ID)
		return err
	})
	if err != nil {
		return presenter.CartView{}, fmt.Errorf("update item: %w", err)
	}

	return presenter.Present(&st.cart), nil
}

// checkLineStock re-validates stock for a line's stored variant. A variant that
// has since disappeared from the catalog is not checked.
func (e *Engine) checkLineStock(ctx context.Context, item domain.CartItem, quantity int) error {
	if !item.VariantID.Valid {
		return nil
	}

	variant, err := e.catalog.GetVariant(ctx, item.ProductID, item.VariantID.UUID)
	if errors.Is(err, domain.ErrVariantInvalid) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("catalog.GetVariant: %w", err)
	}

	return domain.CheckStock(variant.Stock, quantity)
}

func (e *Engine) RemoveItem(ctx context.Context, storeID uuid.UUID, actor domain.Actor, itemID uuid.UUID) (presenter.CartView, error) {
	if actor.IsZero() {
		return presenter.CartView{}, domain.ErrActorRequired
	}

	st, err := e.inTx(ctx, func(repo port.CartRepository, st *txState) error {
		cart, err := e.resolveCart(ctx, repo, storeID, actor, st)
		if err != nil {
			return err
		}

		item, ok := cart.FindItem(itemID)
		if !ok {
			return fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemNotFound)
		}

		deleted, err := repo.DeleteItem(ctx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemNotFound)
		}

		if err := repo.Touch(ctx, cart.ID, e.now()); err != nil {
			return err
		}

		if st.cart, err = reload(ctx, repo, cart.ID); err != nil {
			return err
		}
		item.Quantity = 0
		st.emit(itemEvent(e.event(domain.CartItemRemoved, st.cart), item))
		return nil
	})
	if err != nil {
		return presenter.CartView{}, fmt.Errorf("remove item: %w", err)
	}

	return presenter.Present(&st.cart), nil
}

// inTx runs fn in one transaction and publishes its events once it committed.
func (e *Engine) inTx(ctx context.Context, fn func(repo port.CartRepository, st *txState) error) (*txState, error) {
	var st *txState

	err := e.store.WithinTx(ctx, func(repo port.CartRepository) error {
		st = &txState{}
		return fn(repo, st)
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, st.events)
	return st, nil
}
