package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Times returns the line total for qty units priced at m.
func (m Money) Times(qty int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(qty))),
		Currency: m.Currency,
	}
}
