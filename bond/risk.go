package bond

import "math"

// =============================================================================
// DURATION AND CONVEXITY
// =============================================================================

// MacaulayDuration returns the present-value-weighted average time to
// receipt of the bond's cashflows, in years:
// Σ (p/freq)·PV(cf_p) / Σ PV(cf_p), discounted at the per-period yield.
// A zero-coupon bond puts all weight on the final payment, so its duration
// equals its maturity.
func MacaulayDuration(t Terms, yield float64) float64 {
	m, coupon := t.schedule()
	periodYield := yield / float64(t.Frequency)

	var weighted, total float64
	for p := 1; p <= m; p++ {
		pv := cashflowAt(p, m, coupon, t.Face) / math.Pow(1+periodYield, float64(p))
		weighted += float64(p) / float64(t.Frequency) * pv
		total += pv
	}
	return weighted / total
}

// Convexity returns the second-order sensitivity of the bond price to its
// yield: Σ cf_p·p·(p+1)/(1+y)^p, normalized by price·(1+y)²·freq², with y
// the per-period yield.
func Convexity(t Terms, yield float64) float64 {
	m, coupon := t.schedule()
	periodYield := yield / float64(t.Frequency)
	freq := float64(t.Frequency)

	var sum float64
	for p := 1; p <= m; p++ {
		cf := cashflowAt(p, m, coupon, t.Face)
		sum += cf * float64(p) * float64(p+1) / math.Pow(1+periodYield, float64(p))
	}

	price := priceAtPeriodYield(t, periodYield)
	return sum / (price * math.Pow(1+periodYield, 2) * freq * freq)
}
