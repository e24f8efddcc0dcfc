package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShaysReality/fincalc/config"
	"github.com/ShaysReality/fincalc/daycount"
	"github.com/ShaysReality/fincalc/factory"
	"github.com/ShaysReality/fincalc/store/sqlite"
)

// newTestServer wires a handler against an in-memory catalog.
func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Catalog) {
	t.Helper()
	catalog, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	srv := httptest.NewServer(NewRouter(NewHandler(catalog, config.Default())))
	t.Cleanup(srv.Close)
	return srv, catalog
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeResult(t *testing.T, resp *http.Response) ResultDTO {
	t.Helper()
	var out ResultDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestNPV_InlineSeries(t *testing.T) {
	srv, _ := newTestServer(t)

	// GIVEN an investment of 100 returning 50 then 60
	// WHEN discounted at 10%
	// THEN the NPV is slightly negative
	resp := postJSON(t, srv, "/api/npv", `{"values": [-100, 50, 60], "rate": 0.1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.InDelta(t, -4.9587, *out.Result, 1e-4)
}

func TestNPV_Rounding(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/npv", `{"values": [-100, 50, 60], "rate": 0.1, "round": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	assert.Equal(t, "-4.96", out.Formatted)
}

func TestIRR_CatalogSeries(t *testing.T) {
	srv, catalog := newTestServer(t)

	require.NoError(t, catalog.SaveSeries(context.Background(), factory.Series{
		Name:   "proj",
		Values: []float64{-100, 60, 60},
		Basis:  daycount.Act365,
	}))

	resp := postJSON(t, srv, "/api/irr", `{"series": "proj"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.Greater(t, *out.Result, 0.10)
	assert.Less(t, *out.Result, 0.20)
}

func TestIRR_UnknownSeriesIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/irr", `{"series": "missing"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIRR_AllPositiveIs422(t *testing.T) {
	srv, _ := newTestServer(t)

	// A series with no sign change has no internal rate of return.
	resp := postJSON(t, srv, "/api/irr", `{"values": [10, 20, 30]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestXNPV_DatedSeries(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/xnpv", `{
		"values": [-100, 50, 60],
		"dates": ["2023-01-01", "2024-01-01", "2024-12-31"],
		"rate": 0.1
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.InDelta(t, -4.9587, *out.Result, 1e-4)
}

func TestXNPV_LengthMismatchIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/xnpv", `{
		"values": [-100, 50, 60],
		"dates": ["2023-01-01", "2024-01-01"],
		"rate": 0.1
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestXIRR_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/xirr", `{
		"values": [-100, 110],
		"dates": ["2025-01-01", "2026-01-01"]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.InDelta(t, 0.10, *out.Result, 1e-4)
}

func TestPayback_NeverRecovered(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/payback", `{"values": [-100, 10, 10]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	assert.Nil(t, out.Result)
	assert.Equal(t, "never", out.Formatted)
}

func TestProfitabilityIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/pi", `{"values": [-100, 60, 60], "rate": 0.1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	// PV of inflows: 60/1.1 + 60/1.21 = 104.13..., over a 100 outlay.
	assert.InDelta(t, 1.0413, *out.Result, 1e-4)
}

func TestProfitabilityIndex_ZeroOutlayIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/pi", `{"values": [0, 60, 60], "rate": 0.1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBondPrice_Inline(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/bond/price", `{
		"face": 1000, "coupon_rate": 0.05, "years": 10, "frequency": 2,
		"yield": 0.05
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	// Coupon rate equal to yield prices at par.
	assert.InDelta(t, 1000, *out.Result, 1e-6)
}

func TestBondYield_CatalogBond(t *testing.T) {
	srv, catalog := newTestServer(t)

	resp := postJSON(t, srv, "/api/bonds/", `{
		"name": "t10", "face": 1000, "coupon_rate": 0.05, "years": 10, "frequency": 2
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	names, err := catalog.ListBonds(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"t10"}, names)

	resp = postJSON(t, srv, "/api/bond/yield", `{"bond": "t10", "price": 1000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.InDelta(t, 0.05, *out.Result, 1e-6)
}

func TestBondPrice_InvalidTermsIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/bond/price", `{
		"face": 1000, "coupon_rate": 0.05, "years": 10, "frequency": 0,
		"yield": 0.05
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWACC(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/wacc", `{
		"equity_weight": 0.6, "debt_weight": 0.4,
		"cost_of_equity": 0.12, "cost_of_debt": 0.07, "tax_rate": 0.21
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.InDelta(t, 0.6*0.12+0.4*0.07*0.79, *out.Result, 1e-12)
}

func TestWACC_BadWeightsIs422(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/wacc", `{
		"equity_weight": 0.7, "debt_weight": 0.4,
		"cost_of_equity": 0.12, "cost_of_debt": 0.07, "tax_rate": 0.21
	}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGordon_NonConvergentIs422(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/gordon", `{"dividend": 2, "growth": 0.08, "required": 0.05}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAnnuity_ZeroRate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/annuity/pv", `{"rate": 0, "periods": 10, "payment": 100}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResult(t, resp)
	require.NotNil(t, out.Result)
	assert.Equal(t, 1000.0, *out.Result)
}

func TestSeriesCatalog_CRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/series/", `{
		"name": "gd30",
		"values": [-100, 50, 60],
		"dates": ["2025-01-01", "2025-07-01", "2026-01-01"],
		"basis": "ACT/360"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	getResp, err := http.Get(srv.URL + "/api/series/gd30")
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var got factory.SeriesJSON
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&got))
	assert.Equal(t, []float64{-100, 50, 60}, got.Values)
	assert.Equal(t, "ACT/360", got.Basis)
	assert.Equal(t, []string{"2025-01-01", "2025-07-01", "2026-01-01"}, got.Dates)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/series/gd30", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	missing, err := http.Get(srv.URL + "/api/series/gd30")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestSaveSeries_RequiresName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/series/", `{"values": [-100, 50]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMalformedBodyIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv, "/api/npv", `{"values": [`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
