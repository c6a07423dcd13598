package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers bond routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bonds", func(r chi.Router) {
		r.Get("/", h.HandleGetBonds)
		r.Post("/", h.HandleCreateBond)
		r.Get("/{id}", h.HandleGetBond)
		r.Put("/{id}", h.HandleUpdateBond)
		r.Delete("/{id}", h.HandleDeleteBond)
	})
}
