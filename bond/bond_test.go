package bond_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ShaysReality/fincalc/bond"
	"github.com/ShaysReality/fincalc/solve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PRICE
// =============================================================================

func TestPrice_DiscountBond(t *testing.T) {
	// Yield above coupon must price below par, and not absurdly below.
	terms := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}
	price := bond.Price(terms, 0.06)
	if price <= 900 || price >= 1000 {
		t.Errorf("Price = %.4f, want in (900, 1000)", price)
	}
}

func TestPrice_ParBond(t *testing.T) {
	// Yield equal to coupon prices exactly at par.
	terms := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 7, Frequency: 2}
	price := bond.Price(terms, 0.05)
	if math.Abs(price-1000) > 1e-8 {
		t.Errorf("Price = %.10f, want 1000 at par", price)
	}
}

func TestPrice_PremiumBond(t *testing.T) {
	terms := bond.Terms{Face: 1000, CouponRate: 0.08, Years: 5, Frequency: 2}
	if price := bond.Price(terms, 0.06); price <= 1000 {
		t.Errorf("Price = %.4f, want above par when coupon exceeds yield", price)
	}
}

func TestPrice_ZeroCoupon(t *testing.T) {
	// A zero-coupon bond is a single discounted face value.
	terms := bond.Terms{Face: 1000, CouponRate: 0, Years: 10, Frequency: 1}
	want := 1000 / math.Pow(1.05, 10)
	if price := bond.Price(terms, 0.05); math.Abs(price-want) > 1e-9 {
		t.Errorf("Price = %.9f, want %.9f", price, want)
	}
}

// =============================================================================
// YIELD
// =============================================================================

func TestYield_RoundTripsPrice(t *testing.T) {
	tests := []struct {
		name  string
		terms bond.Terms
		yield float64
	}{
		{"semiannual discount", bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}, 0.06},
		{"annual premium", bond.Terms{Face: 100, CouponRate: 0.09, Years: 4, Frequency: 1}, 0.04},
		{"quarterly near-par", bond.Terms{Face: 500, CouponRate: 0.03, Years: 2.5, Frequency: 4}, 0.031},
		{"high yield", bond.Terms{Face: 1000, CouponRate: 0.10, Years: 6, Frequency: 2}, 0.35},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			price := bond.Price(tc.terms, tc.yield)
			got, err := bond.Yield(tc.terms, price)
			require.NoError(t, err)
			assert.InDelta(t, tc.yield, got, 1e-6)
		})
	}
}

func TestYield_UnreachablePrice(t *testing.T) {
	// No yield produces a negative price, so the payoff has the same sign
	// across the whole per-period bracket.
	terms := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}
	_, err := bond.Yield(terms, -50)
	if !errors.Is(err, solve.ErrNotBracketed) {
		t.Fatalf("err = %v, want ErrNotBracketed", err)
	}
}

// =============================================================================
// DURATION AND CONVEXITY
// =============================================================================

func TestMacaulayDuration_ZeroCouponEqualsMaturity(t *testing.T) {
	// All weight sits on the final payment.
	terms := bond.Terms{Face: 1000, CouponRate: 0, Years: 8, Frequency: 2}
	if d := bond.MacaulayDuration(terms, 0.05); math.Abs(d-8) > 1e-12 {
		t.Errorf("MacaulayDuration = %.12f, want exactly 8", d)
	}
}

func TestMacaulayDuration_CouponShortensDuration(t *testing.T) {
	zero := bond.Terms{Face: 1000, CouponRate: 0, Years: 10, Frequency: 2}
	coupon := bond.Terms{Face: 1000, CouponRate: 0.06, Years: 10, Frequency: 2}

	dz := bond.MacaulayDuration(zero, 0.05)
	dc := bond.MacaulayDuration(coupon, 0.05)
	if dc >= dz {
		t.Errorf("coupon duration %.6f should be below zero-coupon duration %.6f", dc, dz)
	}
	if dc <= 0 || dc > 10 {
		t.Errorf("duration %.6f out of (0, maturity]", dc)
	}
}

func TestConvexity_PositiveAndOrdered(t *testing.T) {
	short := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 2, Frequency: 2}
	long := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 20, Frequency: 2}

	cs := bond.Convexity(short, 0.05)
	cl := bond.Convexity(long, 0.05)
	if cs <= 0 || cl <= 0 {
		t.Fatalf("convexity must be positive, got short=%.6f long=%.6f", cs, cl)
	}
	if cl <= cs {
		t.Errorf("longer maturity should be more convex: short=%.6f long=%.6f", cs, cl)
	}
}

func TestConvexity_SecondOrderPriceApproximation(t *testing.T) {
	// GIVEN: Duration and convexity at a base yield
	// WHEN: Approximating the price change for a small yield shift
	// THEN: The second-order Taylor estimate lands near the repriced value

	terms := bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}
	y0, dy := 0.06, 0.001

	p0 := bond.Price(terms, y0)
	p1 := bond.Price(terms, y0+dy)

	macaulay := bond.MacaulayDuration(terms, y0)
	modified := macaulay / (1 + y0/2)
	convexity := bond.Convexity(terms, y0)

	estimate := p0 * (1 - modified*dy + 0.5*convexity*dy*dy)
	assert.InDelta(t, p1, estimate, math.Abs(p1)*1e-4)
}

// =============================================================================
// TERMS VALIDATION
// =============================================================================

func TestTermsValidate(t *testing.T) {
	tests := []struct {
		name    string
		terms   bond.Terms
		wantErr bool
	}{
		{"valid", bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 2}, false},
		{"zero coupon ok", bond.Terms{Face: 1000, CouponRate: 0, Years: 5, Frequency: 1}, false},
		{"zero face", bond.Terms{Face: 0, CouponRate: 0.05, Years: 10, Frequency: 2}, true},
		{"negative coupon", bond.Terms{Face: 1000, CouponRate: -0.01, Years: 10, Frequency: 2}, true},
		{"zero years", bond.Terms{Face: 1000, CouponRate: 0.05, Years: 0, Frequency: 2}, true},
		{"zero frequency", bond.Terms{Face: 1000, CouponRate: 0.05, Years: 10, Frequency: 0}, true},
		{"maturity shorter than one period", bond.Terms{Face: 1000, CouponRate: 0.05, Years: 0.2, Frequency: 1}, true},
		{"short maturity with enough frequency ok", bond.Terms{Face: 1000, CouponRate: 0.05, Years: 0.5, Frequency: 2}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.terms.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, bond.ErrInvalidTerms)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
