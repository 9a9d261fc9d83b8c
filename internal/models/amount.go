package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a currency value in cents.
type Amount int64

// MaxAmount is the largest single transfer accepted (99,999,999.99).
const MaxAmount Amount = 9_999_999_999

var (
	ErrAmountFormat    = errors.New("amount must be a decimal number")
	ErrAmountPrecision = errors.New("amount must have at most 2 decimal places")
	ErrAmountRange     = errors.New("amount is out of range")
)

// ParseAmount parses a decimal string such as "30" or "12.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrAmountFormat, s)
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, fmt.Errorf("%w: %q", ErrAmountPrecision, s)
	}
	cents := d.Shift(2)
	if cents.Abs().GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return 0, fmt.Errorf("%w: %q", ErrAmountRange, s)
	}
	return Amount(cents.IntPart()), nil
}

// MustParseAmount is ParseAmount for constants; it panics on bad input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal converts the amount to a decimal with two fractional digits.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// String renders the amount with exactly two decimals, e.g. "-30.00".
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// Positive reports whether the amount is greater than zero.
func (a Amount) Positive() bool {
	return a > 0
}
