package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(CORS)
	r.Use(JSONContentType)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/routes", h.GetRoutes)
		r.Post("/routes", h.CreateRoute)
		r.Put("/routes", h.ReplaceRoutes)
		r.Post("/routes/validate", h.ValidateRoutes)
		r.Get("/routes/{name}", h.GetRoute)
		r.Put("/routes/{name}", h.UpdateRoute)
		r.Delete("/routes/{name}", h.DeleteRoute)

		r.Get("/health", h.CheckHealth)
	})

	return r
}
