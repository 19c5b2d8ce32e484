package domain

import (
	"errors"
	"fmt"
)

var (
	ErrActorRequired        = errors.New("actor required")
	ErrProductNotFound      = errors.New("product not found")
	ErrVariantRequired      = errors.New("variant required for this product")
	ErrVariantInvalid       = errors.New("variant is not valid for this product")
	ErrVariantNotApplicable = errors.New("product has no variants")
	ErrOutOfStock           = errors.New("out of stock")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrItemNotFound         = errors.New("item not found")
	ErrConcurrencyConflict  = errors.New("concurrency conflict, retry the request")

	ErrInvalidQuantity   = errors.New("quantity is not valid")
	ErrStoreNotFound     = errors.New("store not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid cart status transition")

	// ErrDuplicate is returned by storage when a uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("duplicate row")
)

// StockError reports a stock violation together with the numbers that caused it.
type StockError struct {
	Err       error
	Stock     int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: stock %d, requested %d", e.Err, e.Stock, e.Requested)
}

func (e *StockError) Unwrap() error {
	return e.Err
}

// CheckStock applies the add/update stock policy for a variant.
func CheckStock(stock, requested int) error {
	if stock <= 0 {
		return &StockError{Err: ErrOutOfStock, Stock: stock, Requested: requested}
	}
	if requested > stock {
		return &StockError{Err: ErrInsufficientStock, Stock: stock, Requested: requested}
	}
	return nil
}
