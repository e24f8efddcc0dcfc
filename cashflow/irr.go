package cashflow

import (
	"time"

	"github.com/ShaysReality/fincalc/daycount"
	"github.com/ShaysReality/fincalc/solve"
)

// =============================================================================
// INTERNAL RATE OF RETURN
// =============================================================================

// DefaultGuess seeds the rate search when the caller has no better estimate.
const DefaultGuess = 0.1

// Convergence tolerances. IRR has a closed-form derivative and converges
// tighter; the date-weighted variant relies on a finite difference.
const (
	irrTolerance  = 1e-10
	xirrTolerance = 1e-8
)

// InternalRateOfReturn finds the flat rate at which the series' present
// value is zero, Newton first with the closed-form NPV derivative, then
// bisection over the fixed rate bracket. A series without a sign change
// (or whose root lies outside the bracket) fails with solve.ErrNotBracketed.
func InternalRateOfReturn(flows []float64, guess float64) (float64, error) {
	return solve.Root(solve.Problem{
		F:          func(r float64) float64 { return npvAt(r, flows) },
		Derivative: func(r float64) float64 { return dNpvAt(r, flows) },
		Guess:      guess,
		Bracket:    solve.RateBracket,
		Tolerance:  irrTolerance,
	})
}

// DateWeightedIRR finds the rate at which the date-weighted present value
// (XNPV) of the series is zero. Excel equivalent: XIRR. The derivative is
// a central finite difference; everything else matches InternalRateOfReturn.
func DateWeightedIRR(flows []float64, dates []time.Time, guess float64, basis daycount.Basis) (float64, error) {
	fracs, err := yearFractions(flows, dates, basis)
	if err != nil {
		return 0, err
	}
	return solve.Root(solve.Problem{
		F:         func(r float64) float64 { return xnpvAt(r, flows, fracs) },
		Guess:     guess,
		Bracket:   solve.RateBracket,
		Tolerance: xirrTolerance,
	})
}
