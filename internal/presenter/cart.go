// Package presenter turns cart state into the shape returned to clients.
package presenter

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/shopspring/decimal"
)

type CartView struct {
	CartID     uuid.UUID       `json:"cartId"`
	Status     string          `json:"status"`
	Items      []CartItemView  `json:"items"`
	ItemsCount int             `json:"itemsCount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Currency   string          `json:"currency,omitempty"`
}

type CartItemView struct {
	ItemID    uuid.UUID       `json:"itemId"`
	ProductID uuid.UUID       `json:"productId"`
	VariantID *uuid.UUID      `json:"variantId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Present is pure. A nil cart yields the zero view with an empty item list.
func Present(cart *domain.Cart) CartView {
	view := CartView{
		Items:    []CartItemView{},
		Subtotal: decimal.Zero,
	}
	if cart == nil {
		return view
	}

	view.CartID = cart.ID
	view.Status = string(cart.Status)

	for _, item := range cart.Items {
		lineTotal := item.Price.Times(item.Quantity)

		iv := CartItemView{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Name:      item.Snapshot.Name,
			SKU:       item.Snapshot.SKU,
			Size:      item.Snapshot.Size,
			Color:     item.Snapshot.Color,
			ImageURL:  item.Snapshot.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: item.Price.Amount,
			LineTotal: lineTotal.Amount,
		}
		if item.VariantID.Valid {
			variantID := item.VariantID.UUID
			iv.VariantID = &variantID
		}

		view.Items = append(view.Items, iv)
		view.ItemsCount += item.Quantity
		view.Subtotal = view.Subtotal.Add(lineTotal.Amount)
		if view.Currency == "" {
			view.Currency = item.Price.Currency.String()
		}
	}

	return view
}
