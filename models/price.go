package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places carried by a Price.
// Prices are stored as integer ticks (minor currency units) so that
// every comparison and arithmetic step in the engine is exact and
// platform independent.
const PriceScale = 2

// Price is a fixed-point price in ticks. A Price of 10050 with
// PriceScale 2 represents 100.50.
type Price int64

// ParsePrice converts a decimal string into ticks. It rejects values
// that carry more precision than PriceScale allows, since silently
// rounding an order price would change its priority in the book.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}

	shifted := d.Shift(PriceScale)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("price %q has more than %d decimal places", s, PriceScale)
	}

	return Price(shifted.IntPart()), nil
}

// Decimal returns the price as a decimal value.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -PriceScale)
}

// String renders the price in decimal notation without trailing
// zeros, matching the representation orders arrive with.
func (p Price) String() string {
	return p.Decimal().String()
}
