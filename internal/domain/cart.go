package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CartStatus string

const (
	CartStatusActive          CartStatus = "active"
	CartStatusCheckoutPending CartStatus = "checkout_pending"
	CartStatusCompleted       CartStatus = "completed"
	CartStatusAbandoned       CartStatus = "abandoned"
	CartStatusMerged          CartStatus = "merged"
)

func ParseCartStatus(s string) (CartStatus, error) {
	switch status := CartStatus(s); status {
	case CartStatusActive, CartStatusCheckoutPending, CartStatusCompleted,
		CartStatusAbandoned, CartStatusMerged:
		return status, nil
	default:
		return "", fmt.Errorf("cart status[%s] is not valid", s)
	}
}

// CanTransitionTo reports whether a cart may move from s to next.
// Allowed: Active->CheckoutPending->Completed, Active->Merged, Active->Abandoned.
func (s CartStatus) CanTransitionTo(next CartStatus) bool {
	switch s {
	case CartStatusActive:
		switch next {
		case CartStatusCheckoutPending, CartStatusMerged, CartStatusAbandoned:
			return true
		}
	case CartStatusCheckoutPending:
		return next == CartStatusCompleted
	case CartStatusCompleted, CartStatusAbandoned, CartStatusMerged:
	}
	return false
}

type Cart struct {
	ID      uuid.UUID
	StoreID uuid.UUID
	Owner   Actor
	Status  CartStatus
	Items   []CartItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition moves the cart to next, refusing any edge not in the state machine.
func (c *Cart) Transition(next CartStatus, at time.Time) error {
	if !c.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, next)
	}
	c.Status = next
	c.UpdatedAt = at
	return nil
}

// FindLine returns the line for (productID, variantID), if present.
func (c *Cart) FindLine(productID uuid.UUID, variantID uuid.NullUUID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c *Cart) FindItem(itemID uuid.UUID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}

type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	VariantID uuid.NullUUID
	Quantity  int
	Price     Money
	Snapshot  ItemSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemSnapshot is display data copied from the catalog when the line was last written.
type ItemSnapshot struct {
	Name     string
	SKU      string
	Size     string
	Color    string
	ImageURL string
}
