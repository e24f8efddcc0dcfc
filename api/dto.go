/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the core numeric functions from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - ResultDTO: The single response shape for numeric results

SERIES INPUT:
  Requests that operate on a cashflow series accept either an inline
  definition (values/dates/basis, the factory.SeriesJSON shape) or a
  reference to a saved catalog entry ("series": "gd30"). Bond requests
  follow the same pattern with "bond".

ROUNDING:
  Every calculation request carries an optional "round" (decimal places).
  Rounding is a rendering concern: the raw float64 result is always
  returned in "result", the rounded rendering in "formatted".

VALIDATION:
  Validation is done in handlers and the factory, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/series.go: SeriesJSON shape and validation
*/
package api

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ShaysReality/fincalc/capital"
	"github.com/ShaysReality/fincalc/factory"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SeriesRef selects a cashflow series: inline or by catalog name.
type SeriesRef struct {
	factory.SeriesJSON
	Series string `json:"series,omitempty"`
}

// BondRef selects bond terms: inline or by catalog name.
type BondRef struct {
	factory.BondJSON
	Bond string `json:"bond,omitempty"`
}

// Rounding is the optional decimal-places setting shared by all
// calculation requests. Nil means the server default.
type Rounding struct {
	Round *int `json:"round,omitempty"`
}

// NPVRequest asks for the flat-rate present value of a series.
type NPVRequest struct {
	SeriesRef
	Rounding
	Rate float64 `json:"rate"`
}

// IRRRequest asks for the internal rate of return of a series.
type IRRRequest struct {
	SeriesRef
	Rounding
	Guess *float64 `json:"guess,omitempty"`
}

// XNPVRequest asks for the date-weighted present value of a dated series.
type XNPVRequest struct {
	SeriesRef
	Rounding
	Rate float64 `json:"rate"`
}

// XIRRRequest asks for the date-weighted rate of return of a dated series.
type XIRRRequest struct {
	SeriesRef
	Rounding
	Guess *float64 `json:"guess,omitempty"`
}

// BondPriceRequest prices a bond at a given annual yield. The same shape
// serves duration and convexity.
type BondPriceRequest struct {
	BondRef
	Rounding
	Yield float64 `json:"yield"`
}

// BondYieldRequest solves for the yield matching a target price.
type BondYieldRequest struct {
	BondRef
	Rounding
	Price float64 `json:"price"`
}

// WACCRequest wraps the capital-structure input.
type WACCRequest struct {
	capital.WACCInput
	Rounding
}

// GordonRequest asks for the Gordon-growth perpetuity value.
type GordonRequest struct {
	Rounding
	Dividend float64 `json:"dividend"`
	Growth   float64 `json:"growth"`
	Required float64 `json:"required"`
}

// AnnuityRequest asks for the present or future value of level payments.
type AnnuityRequest struct {
	Rounding
	Rate    float64 `json:"rate"`
	Periods int     `json:"periods"`
	Payment float64 `json:"payment"`
}

// PaybackRequest asks for the fractional payback period of a series.
type PaybackRequest struct {
	SeriesRef
	Rounding
}

// ProfitabilityRequest asks for the profitability index of a series.
type ProfitabilityRequest struct {
	SeriesRef
	Rounding
	Rate float64 `json:"rate"`
}

// SaveBondRequest names a bond contract for the catalog.
type SaveBondRequest struct {
	factory.BondJSON
	Name string `json:"name"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ResultDTO is the single numeric response shape. Result is null when the
// value is not finite (a never-recovered payback period); Formatted always
// carries a printable rendering.
type ResultDTO struct {
	Result    *float64 `json:"result"`
	Formatted string   `json:"formatted"`
}

// ErrorDTO is the JSON error body.
type ErrorDTO struct {
	Error string `json:"error"`
}

// SeriesListDTO lists catalog entries.
type SeriesListDTO struct {
	Series []string `json:"series"`
}

// BondListDTO lists catalog bonds.
type BondListDTO struct {
	Bonds []string `json:"bonds"`
}

// newResult renders a value with the given decimal places; places < 0
// disables rounding.
func newResult(value float64, places int) ResultDTO {
	if math.IsInf(value, 1) {
		return ResultDTO{Result: nil, Formatted: "never"}
	}
	d := decimal.NewFromFloat(value)
	if places >= 0 {
		d = d.Round(int32(places))
	}
	return ResultDTO{Result: &value, Formatted: d.String()}
}
