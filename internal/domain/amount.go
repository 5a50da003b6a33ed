package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// AmountDecimals is the number of implied fractional digits carried by
// every Amount.
const AmountDecimals = 4

// Amount is a signed fixed-point monetary value with four implied decimal
// places, stored as an int64 count of ten-thousandths. Arithmetic is exact
// and checked: operations that would wrap return ErrAmountOverflow instead
// of producing a silently wrong balance.
type Amount int64

// ParseAmount parses a decimal string such as "1.5" or "1000.0001" into an
// Amount. It returns an error for malformed input, for values with more
// than four decimal places, and for values outside the int64 range.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	scaled := d.Shift(AmountDecimals)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", s, AmountDecimals)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, ErrAmountOverflow
	}
	return Amount(scaled.IntPart()), nil
}

// Add returns a + b, or ErrAmountOverflow if the sum does not fit in an
// Amount.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > Amount(math.MaxInt64)-b {
		return 0, ErrAmountOverflow
	}
	if b < 0 && a < Amount(math.MinInt64)-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// Sub returns a - b, or ErrAmountOverflow if the difference does not fit
// in an Amount.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b == Amount(math.MinInt64) {
		return 0, ErrAmountOverflow
	}
	return a.Add(-b)
}

// IsNegative returns true if the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

// String renders the amount with exactly four decimal places, e.g.
// "1000.0000" or "-1.5000".
func (a Amount) String() string {
	return decimal.New(int64(a), -AmountDecimals).StringFixed(AmountDecimals)
}
