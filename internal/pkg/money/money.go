package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNonPositive signals an amount that converts to zero or negative minor units.
var ErrNonPositive = errors.New("non-positive amount")

var hundred = decimal.NewFromInt(100)

// MinorUnits converts a decimal currency amount into integer minor units
// (cents) using round half up.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// PositiveMinorUnits converts like MinorUnits but rejects amounts that do not
// round to at least one minor unit. Used where a zero price must be treated
// as invalid rather than silently synced.
func PositiveMinorUnits(amount decimal.Decimal) (int64, error) {
	cents := MinorUnits(amount)
	if cents <= 0 {
		return 0, ErrNonPositive
	}
	return cents, nil
}

// RoundCents rounds a decimal amount to two fractional digits, half up.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
