/*
Package solve provides the scalar root-finding engine.

PURPOSE:
  This package contains the domain-agnostic numerical core shared by every
  iterative calculation in the system. Whether solving for an internal rate
  of return, a date-weighted return, or a bond yield, the same two-phase
  engine finds the rate: Newton's method first for speed, bisection second
  for guaranteed termination.

KEY CONCEPTS IN THIS FILE (solve.go):
  - Objective: A scalar function of one real variable
  - Problem:   A root-finding request (payoff, derivative, bracket, seed)
  - Root:      The two-phase Newton + bisection driver

DESIGN PRINCIPLES:
  1. Purity: No state, no I/O. Each call allocates its own working variables,
     so concurrent callers need no locking.
  2. Bounded cost: Iteration counts are fixed upper bounds (50 Newton +
     200 bisection). No cancellation semantics are needed.
  3. One engine, many payoffs: Callers supply the payoff function and, when
     a closed form exists, its derivative. Otherwise a central finite
     difference is used.

USAGE:
  rate, err := solve.Root(solve.Problem{
      F:         npvAt,
      Guess:     0.1,
      Bracket:   solve.RateBracket,
      Tolerance: 1e-8,
  })

SEE ALSO:
  - cashflow/irr.go: IRR and XIRR payoffs
  - bond/yield.go:   Bond yield payoff
*/
package solve

import "math"

// =============================================================================
// PROBLEM DEFINITION
// =============================================================================

// Objective is a scalar function of one real variable.
type Objective func(x float64) float64

// Problem describes a single root-finding request.
type Problem struct {
	// F is the payoff function whose root is sought.
	F Objective

	// Derivative is the closed-form derivative of F. When nil, a central
	// finite difference with step DifferenceStep is used instead.
	Derivative Objective

	// Guess seeds the Newton phase.
	Guess float64

	// Bracket bounds the bisection phase: [low, high].
	Bracket [2]float64

	// Tolerance is the convergence threshold on |F(x)|.
	Tolerance float64
}

const (
	// NewtonMaxIterations bounds the Newton phase.
	NewtonMaxIterations = 50

	// BisectionIterations is the fixed iteration count of the bisection
	// phase. The result after exhausting them is the bracket midpoint,
	// an approximate root.
	BisectionIterations = 200

	// RateFloor is the hard lower bound on any rate estimate. A rate at or
	// below -100% is financially meaningless, and the discount factor
	// (1+x) must stay positive.
	RateFloor = -0.999999

	// DifferenceStep is the step of the central finite difference used
	// when no closed-form derivative is supplied.
	DifferenceStep = 1e-6
)

// RateBracket is the fixed bisection bracket for annualized rates
// (IRR, XIRR). Roots outside this range are reported as not bracketed
// rather than searched for; see the package documentation.
var RateBracket = [2]float64{-0.9, 10.0}

// FiniteDifference returns the central finite-difference approximation of
// f' with step DifferenceStep.
func FiniteDifference(f Objective) Objective {
	return func(x float64) float64 {
		return (f(x+DifferenceStep) - f(x-DifferenceStep)) / (2 * DifferenceStep)
	}
}

// =============================================================================
// TWO-PHASE DRIVER
// =============================================================================

// Root finds x such that |p.F(x)| < p.Tolerance.
//
// Phase 1 runs Newton's method from p.Guess. The phase is abandoned (not the
// whole computation) if the derivative vanishes or turns non-finite, or if
// the next estimate is non-finite or at or below RateFloor.
//
// Phase 2 runs exactly BisectionIterations bisection steps over p.Bracket.
// It fails with ErrNotBracketed when F has the same sign at both endpoints.
// If the tolerance is never met, the final bracket midpoint is returned as
// an approximate root.
func Root(p Problem) (float64, error) {
	if x, ok := newton(p); ok {
		return x, nil
	}
	return bisect(p)
}

// newton runs the Newton phase. ok is false when the phase was abandoned
// without converging.
func newton(p Problem) (x float64, ok bool) {
	derivative := p.Derivative
	if derivative == nil {
		derivative = FiniteDifference(p.F)
	}

	x = p.Guess
	for i := 0; i < NewtonMaxIterations; i++ {
		fx := p.F(x)
		if math.Abs(fx) < p.Tolerance {
			return x, true
		}

		dx := derivative(x)
		if dx == 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
			return 0, false
		}

		next := x - fx/dx
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= RateFloor {
			return 0, false
		}
		x = next
	}
	return 0, false
}

// bisect runs the bisection phase over the fixed bracket.
func bisect(p Problem) (float64, error) {
	low, high := p.Bracket[0], p.Bracket[1]
	fLow := p.F(low)
	fHigh := p.F(high)

	// No sign change means no guaranteed root in range.
	if fLow*fHigh > 0 {
		return 0, ErrNotBracketed
	}

	for i := 0; i < BisectionIterations; i++ {
		mid := (low + high) / 2
		fMid := p.F(mid)
		if math.Abs(fMid) < p.Tolerance {
			return mid, nil
		}
		if fLow*fMid < 0 {
			high = mid
		} else {
			low = mid
			fLow = fMid
		}
	}

	return (low + high) / 2, nil
}
