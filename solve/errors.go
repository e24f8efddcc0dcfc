package solve

import "errors"

// ErrNotBracketed is returned when the payoff function has the same sign at
// both bracket endpoints, so bisection cannot guarantee a root in range.
// For rate searches this is a genuine domain failure: an all-positive or
// all-negative cashflow series admits no internal rate of return, and a
// series whose root lies outside RateBracket is reported the same way.
// Callers must handle it explicitly with errors.Is.
var ErrNotBracketed = errors.New("root not bracketed: no sign change across the search interval")
