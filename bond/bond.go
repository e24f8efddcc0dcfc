/*
Package bond prices fixed-coupon bonds and solves for their yields.

PURPOSE:
  Builds the periodic coupon/principal schedule for a fixed-rate bullet
  bond and derives the standard quartet from it: price, yield to maturity,
  Macaulay duration and convexity.

KEY CONCEPTS IN THIS FILE (bond.go):
  - Terms:    The bond contract (face, coupon rate, years, frequency)
  - schedule: The single schedule builder all four metrics share

DESIGN PRINCIPLES:
  1. One schedule, four metrics: period count, per-period coupon and
     per-period yield are derived in exactly one place so price, yield,
     duration and convexity can never diverge.
  2. Derived, not persisted: The schedule is recomputed per call; a bond
     carries no state beyond its Terms.

USAGE:
  terms := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}
  price := bond.Price(terms, 0.06)
  ytm, err := bond.Yield(terms, price)

SEE ALSO:
  - solve: The Newton + bisection engine behind Yield
*/
package bond

import (
	"errors"
	"fmt"
	"math"
)

// =============================================================================
// TERMS AND SCHEDULE
// =============================================================================

// Terms describes a fixed-rate bullet bond.
type Terms struct {
	// Face is the principal repaid at maturity.
	Face float64
	// CouponRate is the annual coupon rate as a decimal (0.05 = 5%).
	CouponRate float64
	// Years is the time to maturity in years.
	Years float64
	// Frequency is the number of coupon payments per year.
	Frequency int
}

// ErrInvalidTerms is returned for a contract that admits no schedule.
var ErrInvalidTerms = errors.New("invalid bond terms")

// Validate rejects terms that cannot produce a coupon schedule.
func (t Terms) Validate() error {
	switch {
	case t.Face <= 0:
		return fmt.Errorf("%w: face value must be positive", ErrInvalidTerms)
	case t.CouponRate < 0:
		return fmt.Errorf("%w: coupon rate must not be negative", ErrInvalidTerms)
	case t.Years <= 0:
		return fmt.Errorf("%w: years to maturity must be positive", ErrInvalidTerms)
	case t.Frequency < 1:
		return fmt.Errorf("%w: coupon frequency must be at least 1 per year", ErrInvalidTerms)
	case int(math.Round(t.Years*float64(t.Frequency))) < 1:
		return fmt.Errorf("%w: maturity too short for the coupon frequency, schedule has no periods", ErrInvalidTerms)
	}
	return nil
}

// schedule derives the shared period structure: the number of coupon
// periods and the per-period coupon payment. The final period additionally
// repays the face value.
func (t Terms) schedule() (periods int, coupon float64) {
	periods = int(math.Round(t.Years * float64(t.Frequency)))
	coupon = t.CouponRate * t.Face / float64(t.Frequency)
	return periods, coupon
}

// cashflowAt returns the payment of period p (1-based) out of m periods.
func cashflowAt(p, m int, coupon, face float64) float64 {
	if p == m {
		return coupon + face
	}
	return coupon
}

// =============================================================================
// PRICE
// =============================================================================

// Price discounts the coupon schedule at the annual yield, compounded per
// period: each period pays coupon·face/freq, the last adds the face, and
// the per-period discount rate is yield/freq.
func Price(t Terms, yield float64) float64 {
	return priceAtPeriodYield(t, yield/float64(t.Frequency))
}

// priceAtPeriodYield prices the schedule at a per-period yield. This is the
// payoff the yield solver inverts.
func priceAtPeriodYield(t Terms, periodYield float64) float64 {
	m, coupon := t.schedule()
	pv := 0.0
	for p := 1; p <= m; p++ {
		pv += cashflowAt(p, m, coupon, t.Face) / math.Pow(1+periodYield, float64(p))
	}
	return pv
}
