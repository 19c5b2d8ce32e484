package domain

import "github.com/google/uuid"

type Store struct {
	ID       uuid.UUID
	Slug     string
	Currency string
}

type Product struct {
	ID           uuid.UUID
	StoreID      uuid.UUID
	Name         string
	Active       bool
	BasePrice    Money
	HasVariants  bool
	MainImageURL string
}

type Variant struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	PriceDelta Money
	Stock      int
	SKU        string
	Size       string
	Color      string
}

// UnitPrice is the product base price plus the variant delta, when a variant is chosen.
func UnitPrice(p Product, v *Variant) Money {
	if v == nil {
		return p.BasePrice
	}
	return Money{
		Amount:   p.BasePrice.Amount.Add(v.PriceDelta.Amount),
		Currency: p.BasePrice.Currency,
	}
}

// SnapshotOf captures the display data a cart line keeps for p and v.
func SnapshotOf(p Product, v *Variant) ItemSnapshot {
	s := ItemSnapshot{
		Name:     p.Name,
		ImageURL: p.MainImageURL,
	}
	if v != nil {
		s.SKU = v.SKU
		s.Size = v.Size
		s.Color = v.Color
	}
	return s
}
