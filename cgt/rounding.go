package cgt

import (
	"github.com/shopspring/decimal"
)

// Rounding selects the direction used by DRound. The direction is a
// rule-specific policy: costs and charges round up (Ceiling), proceeds
// round down (Floor), and unit-price products are first normalised with
// HalfEven before directional rounding is applied.
type Rounding int

const (
	HalfEven Rounding = iota
	Ceiling
	Floor
)

// DRound rounds value to 10^-places in the given direction. It is a no-op
// when the value already has no more decimal digits than requested, so it
// never adds artificial precision.
func DRound(value decimal.Decimal, places int32, mode Rounding) decimal.Decimal {
	if value.Exponent() >= -places {
		return value
	}
	switch mode {
	case Ceiling:
		return value.RoundCeil(places)
	case Floor:
		return value.RoundFloor(places)
	default:
		return value.RoundBank(places)
	}
}
