package bond

import (
	"github.com/ShaysReality/fincalc/solve"
)

// =============================================================================
// YIELD TO MATURITY
// =============================================================================

const yieldTolerance = 1e-8

// yieldBracket bounds the per-period yield search. The annualized bracket
// scales with the coupon frequency.
var yieldBracket = [2]float64{0.000001, 1.0}

// Yield solves for the annual yield at which the bond's schedule discounts
// to the target price. The search runs on the per-period yield (seeded at
// 0.05/freq, finite-difference derivative) and the result is annualized by
// the coupon frequency. A price unreachable within the per-period bracket
// fails with solve.ErrNotBracketed.
func Yield(t Terms, price float64) (float64, error) {
	periodYield, err := solve.Root(solve.Problem{
		F:         func(y float64) float64 { return priceAtPeriodYield(t, y) - price },
		Guess:     0.05 / float64(t.Frequency),
		Bracket:   yieldBracket,
		Tolerance: yieldTolerance,
	})
	if err != nil {
		return 0, err
	}
	return periodYield * float64(t.Frequency), nil
}
