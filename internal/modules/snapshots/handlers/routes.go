package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers snapshot routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", h.HandleGetSnapshots)
		r.Post("/", h.HandleCreateSnapshot)
		r.Delete("/{id}", h.HandleDeleteSnapshot)
	})
}
