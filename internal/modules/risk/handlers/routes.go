package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers risk routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Get("/", h.HandleGetMetrics)
	})
}
