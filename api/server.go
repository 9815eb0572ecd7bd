/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the admin portal

ROUTE GROUPS:
  /api/clients/{clientID}/attendance/*  Generation and read-side views
  /api/clients/{clientID}/config        Shift configuration
  /api/clients/{clientID}/holidays      Holiday calendar
  /api/clients/{clientID}/employees     Employee master
  /api/clients/{clientID}/targets       Payroll targets
  /api/holidays/{id}                    Holiday deletion
  /api/runs                             Generation-run history
  /healthz                              Liveness probe

SECURITY NOTE:
  No authentication middleware; the service is meant to sit behind the
  platform gateway which terminates auth.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/inout: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/clients/{clientID}", func(r chi.Router) {
			// Generation routes
			r.Route("/attendance", func(r chi.Router) {
				r.Post("/generate", h.Generate)
				r.Get("/summary", h.GetSummary)
				r.Get("/{employeeID}", h.GetEmployeeMonth)
			})

			// Configuration routes
			r.Get("/config", h.GetConfig)
			r.Put("/config", h.PutConfig)

			// Upstream data routes
			r.Get("/holidays", h.ListHolidays)
			r.Post("/holidays", h.CreateHoliday)
			r.Get("/employees", h.ListEmployees)
			r.Post("/employees", h.CreateEmployee)
			r.Get("/targets", h.ListTargets)
			r.Put("/targets", h.PutTargets)
		})

		// Holiday deletion is keyed by row id, not client
		r.Delete("/holidays/{id}", h.DeleteHoliday)

		// Audit routes
		r.Get("/runs", h.ListRuns)
	})

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
