/*
Package factory converts JSON and CSV definitions into domain inputs.

PURPOSE:
  The core packages take validated numeric and date slices; this package is
  where raw input becomes those slices. Cashflow series and bond contracts
  can be defined in JSON (API bodies, saved files) or CSV (spreadsheet
  exports), and the factory validates them once so every caller — CLI,
  HTTP handler, catalog — sees the same rules.

JSON SCHEMA (series):
  {
    "name":   "gd30",
    "values": [-100, 50, 60],
    "dates":  ["2025-01-01", "2025-07-01", "2026-01-01"],
    "basis":  "ACT/365"
  }
  dates and basis are optional; an undated series only supports the
  flat-rate operations.

CSV SCHEMA (series):
  One row per cashflow: `amount` or `amount,date`. A header row is
  detected and skipped when the first field does not parse as a number.

JSON SCHEMA (bond):
  {"face": 1000, "coupon_rate": 0.05, "years": 10, "frequency": 2}

KEY FEATURES:
  - Validates value/date pairing (same length, every date parseable)
  - Applies the ACT/365 default basis when none is given
  - Surfaces the domain sentinel errors (ErrInvalidDate,
    ErrUnsupportedBasis, ErrLengthMismatch) so callers branch the same way
    they do on core failures

SEE ALSO:
  - cashflow: Consumes the validated slices
  - store/sqlite: Persists and reloads the same Series shape
  - api/dto.go: Request bodies embed SeriesJSON
*/
package factory

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ShaysReality/fincalc/bond"
	"github.com/ShaysReality/fincalc/cashflow"
	"github.com/ShaysReality/fincalc/daycount"
)

// ErrEmptySeries is returned for a series definition without values.
var ErrEmptySeries = errors.New("series has no values")

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SeriesJSON is the wire representation of a cashflow series.
type SeriesJSON struct {
	Name   string    `json:"name,omitempty"`
	Values []float64 `json:"values"`
	Dates  []string  `json:"dates,omitempty"`
	Basis  string    `json:"basis,omitempty"`
}

// BondJSON is the wire representation of bond terms.
type BondJSON struct {
	Face       float64 `json:"face"`
	CouponRate float64 `json:"coupon_rate"`
	Years      float64 `json:"years"`
	Frequency  int     `json:"frequency"`
}

// =============================================================================
// DOMAIN SHAPE
// =============================================================================

// Series is a validated cashflow series ready for the core packages.
type Series struct {
	Name   string
	Values []float64
	Dates  []time.Time // nil for an undated series
	Basis  daycount.Basis
}

// Dated reports whether the series carries value dates and so supports the
// date-weighted operations.
func (s Series) Dated() bool { return len(s.Dates) > 0 }

// =============================================================================
// FACTORY
// =============================================================================

// SeriesFactory builds domain inputs from external definitions.
type SeriesFactory struct{}

func NewSeriesFactory() *SeriesFactory { return &SeriesFactory{} }

// ParseSeries validates a JSON series definition.
func (f *SeriesFactory) ParseSeries(data []byte) (Series, error) {
	var sj SeriesJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return Series{}, fmt.Errorf("parse series: %w", err)
	}
	return f.FromJSON(sj)
}

// FromJSON validates an already-decoded series definition.
func (f *SeriesFactory) FromJSON(sj SeriesJSON) (Series, error) {
	if len(sj.Values) == 0 {
		return Series{}, ErrEmptySeries
	}

	basis := daycount.Act365
	if sj.Basis != "" {
		var err error
		basis, err = daycount.ParseBasis(sj.Basis)
		if err != nil {
			return Series{}, err
		}
	}

	s := Series{Name: sj.Name, Values: sj.Values, Basis: basis}
	if len(sj.Dates) == 0 {
		return s, nil
	}
	if len(sj.Dates) != len(sj.Values) {
		return Series{}, cashflow.ErrLengthMismatch
	}

	s.Dates = make([]time.Time, len(sj.Dates))
	for i, raw := range sj.Dates {
		d, err := daycount.ParseDate(raw)
		if err != nil {
			return Series{}, err
		}
		s.Dates[i] = d
	}
	return s, nil
}

// ParseSeriesCSV reads `amount[,date]` rows. A non-numeric first row is
// treated as a header and skipped.
func (f *SeriesFactory) ParseSeriesCSV(r io.Reader) (Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row below

	records, err := reader.ReadAll()
	if err != nil {
		return Series{}, fmt.Errorf("parse series csv: %w", err)
	}
	if len(records) > 0 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(records[0][0]), 64); err != nil {
			records = records[1:] // header row
		}
	}
	if len(records) == 0 {
		return Series{}, ErrEmptySeries
	}

	sj := SeriesJSON{}
	dated := len(records[0]) > 1
	for i, rec := range records {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return Series{}, fmt.Errorf("parse series csv: row %d: %w", i+1, err)
		}
		sj.Values = append(sj.Values, v)

		if dated {
			if len(rec) < 2 {
				return Series{}, cashflow.ErrLengthMismatch
			}
			sj.Dates = append(sj.Dates, strings.TrimSpace(rec[1]))
		}
	}
	return f.FromJSON(sj)
}

// ParseBond validates a JSON bond definition.
func (f *SeriesFactory) ParseBond(data []byte) (bond.Terms, error) {
	var bj BondJSON
	if err := json.Unmarshal(data, &bj); err != nil {
		return bond.Terms{}, fmt.Errorf("parse bond: %w", err)
	}
	terms := bond.Terms{
		Face:       bj.Face,
		CouponRate: bj.CouponRate,
		Years:      bj.Years,
		Frequency:  bj.Frequency,
	}
	if err := terms.Validate(); err != nil {
		return bond.Terms{}, err
	}
	return terms, nil
}
