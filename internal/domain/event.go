package domain

import (
	"time"

	"github.com/google/uuid"
)

type CartEventType string

const (
	CartCreated         CartEventType = "cart.created"
	CartItemAdded       CartEventType = "cart.item_added"
	CartItemUpdated     CartEventType = "cart.item_updated"
	CartItemRemoved     CartEventType = "cart.item_removed"
	CartClaimed         CartEventType = "cart.claimed"
	CartMerged          CartEventType = "cart.merged"
	CartCheckoutStarted CartEventType = "cart.checkout_started"
	CartCompleted       CartEventType = "cart.completed"
	CartAbandoned       CartEventType = "cart.abandoned"
)

// CartEvent is a committed cart state change, published for downstream readers.
type CartEvent struct {
	Type       CartEventType `json:"type"`
	CartID     uuid.UUID     `json:"cart_id"`
	StoreID    uuid.UUID     `json:"store_id"`
	OwnerKind  string        `json:"owner_kind"`
	ItemID     *uuid.UUID    `json:"item_id,omitempty"`
	ProductID  *uuid.UUID    `json:"product_id,omitempty"`
	Quantity   int           `json:"quantity,omitempty"`
	SourceCart *uuid.UUID    `json:"source_cart_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
