/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/npv, /api/irr, ...   Cashflow calculations
  /api/bond/*               Bond analytics
  /api/wacc, /api/gordon    Capital-structure calculations
  /api/annuity/*            Annuity values
  /api/series/*             Saved cashflow series
  /api/bonds/*              Saved bond contracts

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Cashflow calculations
		r.Post("/npv", h.NPV)
		r.Post("/irr", h.IRR)
		r.Post("/xnpv", h.XNPV)
		r.Post("/xirr", h.XIRR)
		r.Post("/payback", h.Payback)
		r.Post("/pi", h.ProfitabilityIndex)

		// Bond analytics
		r.Route("/bond", func(r chi.Router) {
			r.Post("/price", h.BondPrice)
			r.Post("/yield", h.BondYield)
			r.Post("/duration", h.BondDuration)
			r.Post("/convexity", h.BondConvexity)
		})

		// Capital-structure calculations
		r.Post("/wacc", h.WACC)
		r.Post("/gordon", h.Gordon)

		// Annuity values
		r.Route("/annuity", func(r chi.Router) {
			r.Post("/pv", h.AnnuityPV)
			r.Post("/fv", h.AnnuityFV)
		})

		// Saved series
		r.Route("/series", func(r chi.Router) {
			r.Get("/", h.ListSeries)
			r.Post("/", h.SaveSeries)
			r.Get("/{name}", h.GetSeries)
			r.Delete("/{name}", h.DeleteSeries)
		})

		// Saved bonds
		r.Route("/bonds", func(r chi.Router) {
			r.Get("/", h.ListBonds)
			r.Post("/", h.SaveBond)
			r.Get("/{name}", h.GetBond)
		})
	})

	return r
}
