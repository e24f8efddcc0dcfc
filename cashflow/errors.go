package cashflow

import "errors"

var (
	// ErrInvalidRate is returned when a discount rate is NaN or infinite.
	ErrInvalidRate = errors.New("invalid rate: must be finite")

	// ErrLengthMismatch is returned when a cashflow series and its date
	// series have different lengths.
	ErrLengthMismatch = errors.New("cashflows and dates must have the same length")

	// ErrNoInitialOutlay is returned when a profitability index is requested
	// for a series without a nonzero initial cashflow to divide by.
	ErrNoInitialOutlay = errors.New("profitability index requires a nonzero initial outlay")
)
