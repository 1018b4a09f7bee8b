/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     request logging
  2. Recoverer:  panic recovery (500 instead of crash)
  3. RequestID:  unique ID per request for tracing
  4. CORS:       cross-origin requests for a calendar frontend

SECURITY NOTE:
  No authentication middleware. The engine is a library behind an internal
  facade; authn/authz belongs to the deployment in front of it.

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/server/main.go: server startup
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

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSchedule)
				r.Delete("/", h.DeleteSchedule)

				r.Get("/days/{date}", h.GetDay)
				r.Put("/days/{date}/hours", h.SetHours)

				r.Post("/interruption", h.HandleInterruption)
				r.Delete("/interruption", h.RemoveInterruption)

				r.Post("/suggest", h.Suggest)
				r.Post("/suggestion", h.ApplySuggestion)

				r.Post("/overrides", h.ApplyOverride)
				r.Delete("/overrides", h.ResetOverrides)

				r.Get("/pay/{year}/{month}", h.PaySummary)
			})
		})
	})

	return r
}
