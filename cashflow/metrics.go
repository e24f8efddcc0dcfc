package cashflow

import "math"

// =============================================================================
// CLOSED-FORM SERIES METRICS
// =============================================================================

// NeverRecovered is the PaybackPeriod sentinel for a series whose
// cumulative cashflow never reaches zero.
var NeverRecovered = math.Inf(1)

// AnnuityPresentValue returns the present value of n level payments of pmt
// at the given periodic rate: pmt · (1 − (1+r)^−n) / r. A zero rate reduces
// to pmt·n.
func AnnuityPresentValue(rate float64, periods int, pmt float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, ErrInvalidRate
	}
	if rate == 0 {
		return pmt * float64(periods), nil
	}
	return pmt * (1 - math.Pow(1+rate, -float64(periods))) / rate, nil
}

// AnnuityFutureValue returns the future value of n level payments of pmt
// at the given periodic rate: pmt · ((1+r)^n − 1) / r. A zero rate reduces
// to pmt·n.
func AnnuityFutureValue(rate float64, periods int, pmt float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, ErrInvalidRate
	}
	if rate == 0 {
		return pmt * float64(periods), nil
	}
	return pmt * (math.Pow(1+rate, float64(periods)) - 1) / rate, nil
}

// PaybackPeriod scans the undiscounted series until the cumulative cashflow
// first reaches zero and returns the fractional period of the crossing,
// interpolating linearly inside the crossing period. NeverRecovered is
// returned when the cumulative total never gets there.
func PaybackPeriod(flows []float64) float64 {
	cumulative := 0.0
	for t, cf := range flows {
		previous := cumulative
		cumulative += cf
		if cumulative >= 0 {
			if t == 0 || cf == 0 {
				return float64(t)
			}
			return float64(t-1) + (-previous)/cf
		}
	}
	return NeverRecovered
}

// ProfitabilityIndex returns the present value of flows[1:] divided by the
// magnitude of the initial outlay flows[0]. A missing or zero initial
// cashflow fails with ErrNoInitialOutlay.
func ProfitabilityIndex(rate float64, flows []float64) (float64, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, ErrInvalidRate
	}
	if len(flows) == 0 || flows[0] == 0 {
		return 0, ErrNoInitialOutlay
	}
	pv := 0.0
	for t := 1; t < len(flows); t++ {
		pv += flows[t] / math.Pow(1+rate, float64(t))
	}
	return pv / math.Abs(flows[0]), nil
}
