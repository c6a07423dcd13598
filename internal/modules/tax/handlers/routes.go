package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers tax routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tax", func(r chi.Router) {
		r.Get("/report", h.HandleGetReport)
		r.Get("/lots/{holdingId}", h.HandleGetOpenLots)
	})
}
