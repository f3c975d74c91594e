package cgt

import (
	"testing"
)

func TestDRoundDirections(t *testing.T) {
	rqDecEq(t, "1.01", DRound(dec("1.001"), 2, Ceiling))
	rqDecEq(t, "1.00", DRound(dec("1.001"), 2, Floor))
	rqDecEq(t, "1.00", DRound(dec("1.005"), 2, HalfEven))
	rqDecEq(t, "1.02", DRound(dec("1.015"), 2, HalfEven))

	// Ceiling of a negative rounds towards zero, floor away from it.
	rqDecEq(t, "-1.00", DRound(dec("-1.001"), 2, Ceiling))
	rqDecEq(t, "-1.01", DRound(dec("-1.001"), 2, Floor))

	// Whole pound rounding
	rqDecEq(t, "1235", DRound(dec("1234.01"), 0, Ceiling))
	rqDecEq(t, "1234", DRound(dec("1234.99"), 0, Floor))
	rqDecEq(t, "1234", DRound(dec("1234.5"), 0, HalfEven))
}

func TestDRoundNoOp(t *testing.T) {
	// Values already at or below the requested precision pass through
	// without gaining digits.
	for _, s := range []string{"1", "1.1", "1.25", "-3", "0"} {
		v := DRound(dec(s), 2, Ceiling)
		if v.String() != dec(s).String() {
			t.Fatalf("DRound(%s) changed the value to %s", s, v)
		}
	}
	rqDecEq(t, "50", DRound(dec("50"), 0, Ceiling))
}
