/*
Package daycount converts calendar date spans into year fractions.

PURPOSE:
  Date-weighted discounting (XNPV, XIRR) needs the fraction of a year
  between two cashflow dates. The market expresses that fraction through a
  day-count basis; this package implements the three supported bases:

    ACT/365   actual days / 365
    ACT/360   actual days / 360
    30E/360   day-of-month capped at 30 on both dates (Eurobond)

  Dates are treated as UTC calendar dates. There is no timezone, leap-second
  or holiday-calendar handling; holiday calendars are out of scope.

USAGE:
  frac, err := daycount.YearFraction(settlement, payment, daycount.Act365)

SEE ALSO:
  - cashflow/xnpv.go: Uses year fractions as discount exponents
*/
package daycount

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// BASIS
// =============================================================================

// Basis selects the year-fraction formula. Immutable, passed per call.
type Basis string

const (
	Act365     Basis = "ACT/365"
	Act360     Basis = "ACT/360"
	Thirty360E Basis = "30E/360"
)

var (
	// ErrUnsupportedBasis is returned for a basis tag outside the three
	// supported conventions.
	ErrUnsupportedBasis = errors.New("unsupported day-count basis")

	// ErrInvalidDate is returned when a date string does not parse to a
	// valid calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// ParseBasis maps a tag to a Basis. Matching is exact.
func ParseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case Act365, Act360, Thirty360E:
		return Basis(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBasis, s)
	}
}

// DateLayout is the wire format for cashflow dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date as a UTC date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// =============================================================================
// YEAR FRACTION
// =============================================================================

// YearFraction returns the fraction of a year between start and end under
// the given basis. The fraction is negative when end precedes start; the
// engine does not enforce chronological order, only date validity.
func YearFraction(start, end time.Time, basis Basis) (float64, error) {
	switch basis {
	case Act365:
		return actualDays(start, end) / 365.0, nil
	case Act360:
		return actualDays(start, end) / 360.0, nil
	case Thirty360E:
		return thirty360European(start, end), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedBasis, basis)
	}
}

// actualDays returns the calendar days from start to end.
func actualDays(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24.0
}

// thirty360European applies the 30E/360 convention: each date's day-of-month
// is capped at 30, then months count 30 days and years 360.
func thirty360European(start, end time.Time) float64 {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()

	if d1 > 30 {
		d1 = 30
	}
	if d2 > 30 {
		d2 = 30
	}

	days := 360*(y2-y1) + 30*(int(m2)-int(m1)) + (d2 - d1)
	return float64(days) / 360.0
}
