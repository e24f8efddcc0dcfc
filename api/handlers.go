/*
handlers.go - HTTP API handlers for the financial calculator

PURPOSE:
  Exposes the calculation core via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the numeric packages.

ENDPOINTS:
  Cashflow:
    POST /api/npv       Flat-rate present value
    POST /api/irr       Internal rate of return
    POST /api/xnpv      Date-weighted present value
    POST /api/xirr      Date-weighted rate of return
    POST /api/payback   Payback period
    POST /api/pi        Profitability index

  Bond:
    POST /api/bond/price      Price at a yield
    POST /api/bond/yield      Yield at a price
    POST /api/bond/duration   Macaulay duration
    POST /api/bond/convexity  Convexity

  Capital:
    POST /api/wacc        Weighted average cost of capital
    POST /api/gordon      Gordon growth valuation
    POST /api/annuity/pv  Annuity present value
    POST /api/annuity/fv  Annuity future value

  Catalog:
    GET/POST   /api/series, /api/bonds
    GET/DELETE /api/series/{name}
    GET        /api/bonds/{name}

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, invalid input (bad date, basis, lengths, terms)
  - 404: Unknown catalog entry
  - 422: Domain failure (root not bracketed, non-convergent growth, bad weights)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ShaysReality/fincalc/bond"
	"github.com/ShaysReality/fincalc/capital"
	"github.com/ShaysReality/fincalc/cashflow"
	"github.com/ShaysReality/fincalc/config"
	"github.com/ShaysReality/fincalc/daycount"
	"github.com/ShaysReality/fincalc/factory"
	"github.com/ShaysReality/fincalc/solve"
	"github.com/ShaysReality/fincalc/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog  *sqlite.Catalog
	Factory  *factory.SeriesFactory
	Defaults config.Config
}

// NewHandler creates a handler backed by the given catalog.
func NewHandler(catalog *sqlite.Catalog, defaults config.Config) *Handler {
	return &Handler{
		Catalog:  catalog,
		Factory:  factory.NewSeriesFactory(),
		Defaults: defaults,
	}
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorDTO{Error: err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sqlite.ErrSeriesNotFound), errors.Is(err, sqlite.ErrBondNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, solve.ErrNotBracketed),
		errors.Is(err, capital.ErrInvalidWeights),
		errors.Is(err, capital.ErrNonConvergentGrowth):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, cashflow.ErrInvalidRate),
		errors.Is(err, cashflow.ErrLengthMismatch),
		errors.Is(err, cashflow.ErrNoInitialOutlay),
		errors.Is(err, daycount.ErrInvalidDate),
		errors.Is(err, daycount.ErrUnsupportedBasis),
		errors.Is(err, bond.ErrInvalidTerms),
		errors.Is(err, factory.ErrEmptySeries):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// places resolves the effective rounding for a request.
func (h *Handler) places(r Rounding) int {
	if r.Round != nil {
		return *r.Round
	}
	return h.Defaults.Round
}

func (h *Handler) guess(g *float64) float64 {
	if g != nil {
		return *g
	}
	return h.Defaults.Guess
}

// resolveSeries returns the referenced catalog series or the validated
// inline definition.
func (h *Handler) resolveSeries(ctx context.Context, ref SeriesRef) (factory.Series, error) {
	if ref.Series != "" {
		return h.Catalog.GetSeries(ctx, ref.Series)
	}
	return h.Factory.FromJSON(ref.SeriesJSON)
}

// resolveBond returns the referenced catalog bond or the validated inline
// terms.
func (h *Handler) resolveBond(ctx context.Context, ref BondRef) (bond.Terms, error) {
	if ref.Bond != "" {
		return h.Catalog.GetBond(ctx, ref.Bond)
	}
	terms := bond.Terms{
		Face:       ref.Face,
		CouponRate: ref.CouponRate,
		Years:      ref.Years,
		Frequency:  ref.Frequency,
	}
	if err := terms.Validate(); err != nil {
		return bond.Terms{}, err
	}
	return terms, nil
}

// =============================================================================
// CASHFLOW HANDLERS
// =============================================================================

func (h *Handler) NPV(w http.ResponseWriter, r *http.Request) {
	var req NPVRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.resolveSeries(r.Context(), req.SeriesRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	value, err := cashflow.PresentValue(req.Rate, s.Values)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) IRR(w http.ResponseWriter, r *http.Request) {
	var req IRRRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.resolveSeries(r.Context(), req.SeriesRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	value, err := cashflow.InternalRateOfReturn(s.Values, h.guess(req.Guess))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) XNPV(w http.ResponseWriter, r *http.Request) {
	var req XNPVRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.resolveSeries(r.Context(), req.SeriesRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	value, err := cashflow.PresentValueByDate(req.Rate, s.Values, s.Dates, s.Basis)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) XIRR(w http.ResponseWriter, r *http.Request) {
	var req XIRRRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.resolveSeries(r.Context(), req.SeriesRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	value, err := cashflow.DateWeightedIRR(s.Values, s.Dates, h.guess(req.Guess), s.Basis)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) Payback(w http.ResponseWriter, r *http.Request) {
	var req PaybackRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.resolveSeries(r.Context(), req.SeriesRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(cashflow.PaybackPeriod(s.Values), h.places(req.Rounding)))
}

func (h *Handler) ProfitabilityIndex(w http.ResponseWriter, r *http.Request) {
	var req ProfitabilityRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.resolveSeries(r.Context(), req.SeriesRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	value, err := cashflow.ProfitabilityIndex(req.Rate, s.Values)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

// =============================================================================
// BOND HANDLERS
// =============================================================================

func (h *Handler) BondPrice(w http.ResponseWriter, r *http.Request) {
	var req BondPriceRequest
	if !decode(w, r, &req) {
		return
	}
	terms, err := h.resolveBond(r.Context(), req.BondRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(bond.Price(terms, req.Yield), h.places(req.Rounding)))
}

func (h *Handler) BondYield(w http.ResponseWriter, r *http.Request) {
	var req BondYieldRequest
	if !decode(w, r, &req) {
		return
	}
	terms, err := h.resolveBond(r.Context(), req.BondRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	value, err := bond.Yield(terms, req.Price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) BondDuration(w http.ResponseWriter, r *http.Request) {
	var req BondPriceRequest
	if !decode(w, r, &req) {
		return
	}
	terms, err := h.resolveBond(r.Context(), req.BondRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(bond.MacaulayDuration(terms, req.Yield), h.places(req.Rounding)))
}

func (h *Handler) BondConvexity(w http.ResponseWriter, r *http.Request) {
	var req BondPriceRequest
	if !decode(w, r, &req) {
		return
	}
	terms, err := h.resolveBond(r.Context(), req.BondRef)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(bond.Convexity(terms, req.Yield), h.places(req.Rounding)))
}

// =============================================================================
// CAPITAL HANDLERS
// =============================================================================

func (h *Handler) WACC(w http.ResponseWriter, r *http.Request) {
	var req WACCRequest
	if !decode(w, r, &req) {
		return
	}
	value, err := capital.WACC(req.WACCInput)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) Gordon(w http.ResponseWriter, r *http.Request) {
	var req GordonRequest
	if !decode(w, r, &req) {
		return
	}
	value, err := capital.GordonGrowth(req.Dividend, req.Growth, req.Required)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) AnnuityPV(w http.ResponseWriter, r *http.Request) {
	var req AnnuityRequest
	if !decode(w, r, &req) {
		return
	}
	value, err := cashflow.AnnuityPresentValue(req.Rate, req.Periods, req.Payment)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

func (h *Handler) AnnuityFV(w http.ResponseWriter, r *http.Request) {
	var req AnnuityRequest
	if !decode(w, r, &req) {
		return
	}
	value, err := cashflow.AnnuityFutureValue(req.Rate, req.Periods, req.Payment)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResult(value, h.places(req.Rounding)))
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	names, err := h.Catalog.ListSeries(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SeriesListDTO{Series: names})
}

func (h *Handler) SaveSeries(w http.ResponseWriter, r *http.Request) {
	var req factory.SeriesJSON
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("series name is required"))
		return
	}
	s, err := h.Factory.FromJSON(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Catalog.SaveSeries(r.Context(), s); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": s.Name})
}

func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	s, err := h.Catalog.GetSeries(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := factory.SeriesJSON{Name: s.Name, Values: s.Values, Basis: string(s.Basis)}
	for _, d := range s.Dates {
		out.Dates = append(out.Dates, d.Format(daycount.DateLayout))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteSeries(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListBonds(w http.ResponseWriter, r *http.Request) {
	names, err := h.Catalog.ListBonds(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BondListDTO{Bonds: names})
}

func (h *Handler) SaveBond(w http.ResponseWriter, r *http.Request) {
	var req SaveBondRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("bond name is required"))
		return
	}
	terms := bond.Terms{
		Face:       req.Face,
		CouponRate: req.CouponRate,
		Years:      req.Years,
		Frequency:  req.Frequency,
	}
	if err := h.Catalog.SaveBond(r.Context(), req.Name, terms); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (h *Handler) GetBond(w http.ResponseWriter, r *http.Request) {
	terms, err := h.Catalog.GetBond(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, factory.BondJSON{
		Face:       terms.Face,
		CouponRate: terms.CouponRate,
		Years:      terms.Years,
		Frequency:  terms.Frequency,
	})
}
