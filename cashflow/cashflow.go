/*
Package cashflow discounts cashflow series and solves for their returns.

PURPOSE:
  The discounting core of the calculator. A cashflow series is an ordered
  slice of real numbers: index 0 is the initial outlay (negative by
  convention), index t the net cash at period t. Order is significant, it
  defines the period index; there is no uniqueness constraint.

  Flat-rate operations (NPV, IRR, annuities, payback, profitability index)
  discount by period index. Date-weighted operations (XNPV, XIRR) pair each
  cashflow with a calendar date and discount by the day-count year fraction
  from the first date.

DESIGN PRINCIPLES:
  1. Purity: Value in, value out. No state survives a call, so concurrent
     callers need no locking.
  2. Explicit failure: Non-finite rates, length mismatches and unbracketed
     roots surface as sentinel errors, never as NaN results.

USAGE:
  npv, err := cashflow.PresentValue(0.1, []float64{-100, 50, 60})
  irr, err := cashflow.InternalRateOfReturn([]float64{-100, 60, 60}, cashflow.DefaultGuess)

SEE ALSO:
  - solve:    The Newton + bisection engine behind IRR and XIRR
  - daycount: Year fractions for the date-weighted variants
*/
package cashflow

import "math"

// =============================================================================
// FLAT-RATE PRESENT VALUE
// =============================================================================

// PresentValue discounts a periodic cashflow series at a flat rate:
// Σ flows[t] / (1+rate)^t. The rate must be finite.
func PresentValue(rate float64, flows []float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, ErrInvalidRate
	}
	return npvAt(rate, flows), nil
}

// npvAt is PresentValue without validation, usable as a solver payoff.
func npvAt(rate float64, flows []float64) float64 {
	pv := 0.0
	for t, cf := range flows {
		pv += cf / math.Pow(1+rate, float64(t))
	}
	return pv
}

// dNpvAt is the closed-form derivative of npvAt with respect to the rate:
// Σ -t·flows[t] / (1+rate)^(t+1).
func dNpvAt(rate float64, flows []float64) float64 {
	d := 0.0
	for t, cf := range flows {
		d -= float64(t) * cf / math.Pow(1+rate, float64(t+1))
	}
	return d
}
