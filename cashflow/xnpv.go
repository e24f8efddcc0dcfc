package cashflow

import (
	"math"
	"time"

	"github.com/ShaysReality/fincalc/daycount"
)

// =============================================================================
// DATE-WEIGHTED PRESENT VALUE (XNPV)
// =============================================================================

// PresentValueByDate discounts each cashflow by (1+rate) raised to the
// year fraction between dates[0] and dates[i] under the given basis.
// Dates pair element-wise with flows and should be chronologically
// non-decreasing for a financially meaningful result; only validity is
// enforced here.
func PresentValueByDate(rate float64, flows []float64, dates []time.Time, basis daycount.Basis) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, ErrInvalidRate
	}
	fracs, err := yearFractions(flows, dates, basis)
	if err != nil {
		return 0, err
	}
	return xnpvAt(rate, flows, fracs), nil
}

// yearFractions resolves each date to its discount exponent relative to
// the first date. Computed once per call so the solver payoff does not
// re-derive them on every iteration.
func yearFractions(flows []float64, dates []time.Time, basis daycount.Basis) ([]float64, error) {
	if len(flows) != len(dates) {
		return nil, ErrLengthMismatch
	}
	fracs := make([]float64, len(dates))
	for i, d := range dates {
		frac, err := daycount.YearFraction(dates[0], d, basis)
		if err != nil {
			return nil, err
		}
		fracs[i] = frac
	}
	return fracs, nil
}

// xnpvAt discounts flows by precomputed year-fraction exponents.
func xnpvAt(rate float64, flows, fracs []float64) float64 {
	pv := 0.0
	for i, cf := range flows {
		pv += cf / math.Pow(1+rate, fracs[i])
	}
	return pv
}
