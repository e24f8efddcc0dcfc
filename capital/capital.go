/*
Package capital provides cost-of-capital and dividend-discount valuation.

PURPOSE:
  The two closed-form corporate-finance models of the calculator:

  - WACC: weighted average cost of capital over an equity/debt split,
    with the debt leg taken after tax.
  - Gordon growth: perpetuity value of a dividend stream growing at a
    constant rate, D1/(r−g).

  Both are single-expression formulas guarded by the domain checks that
  make them meaningful: capital weights must sum to one, and the required
  return must exceed the growth rate or the perpetuity does not converge.

USAGE:
  rate, err := capital.WACC(capital.WACCInput{
      EquityWeight: 0.6, DebtWeight: 0.4,
      CostOfEquity: 0.12, CostOfDebt: 0.07, TaxRate: 0.21,
  })
  value, err := capital.GordonGrowth(2, 0.04, 0.09)
*/
package capital

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidWeights is returned when the equity and debt weights do
	// not sum to one (within a 1e-8 tolerance).
	ErrInvalidWeights = errors.New("equity and debt weights must sum to 1")

	// ErrNonConvergentGrowth is returned when the required return does not
	// exceed the growth rate, so the perpetuity has no finite value.
	ErrNonConvergentGrowth = errors.New("required return must exceed growth rate")
)

// weightTolerance bounds the acceptable deviation of we+wd from 1.
const weightTolerance = 1e-8

// =============================================================================
// WACC
// =============================================================================

// WACCInput holds the capital structure and component costs.
type WACCInput struct {
	// EquityWeight and DebtWeight are the capital-structure shares; they
	// must sum to 1.
	EquityWeight float64 `json:"equity_weight"`
	DebtWeight   float64 `json:"debt_weight"`

	// CostOfEquity and CostOfDebt are annual rates as decimals. The debt
	// cost is pre-tax; the tax shield is applied here.
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"`

	// TaxRate is the marginal corporate tax rate as a decimal.
	TaxRate float64 `json:"tax_rate"`
}

// WACC returns we·re + wd·rd·(1−tax).
func WACC(in WACCInput) (float64, error) {
	if math.Abs(in.EquityWeight+in.DebtWeight-1) > weightTolerance {
		return 0, fmt.Errorf("%w: got %g", ErrInvalidWeights, in.EquityWeight+in.DebtWeight)
	}
	return in.EquityWeight*in.CostOfEquity + in.DebtWeight*in.CostOfDebt*(1-in.TaxRate), nil
}

// =============================================================================
// GORDON GROWTH
// =============================================================================

// GordonGrowth values a perpetual dividend stream: d1/(r−g), where d1 is
// next period's dividend, g the constant growth rate and r the required
// return.
func GordonGrowth(d1, g, r float64) (float64, error) {
	if r <= g {
		return 0, fmt.Errorf("%w: r=%g, g=%g", ErrNonConvergentGrowth, r, g)
	}
	return d1 / (r - g), nil
}
