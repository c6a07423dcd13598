package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers allocation routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/allocation", func(r chi.Router) {
		r.Get("/", h.HandleGetAllocation)
		r.Get("/groups", h.HandleGetGroups)
		r.Post("/groups", h.HandleCreateGroup)
		r.Put("/groups/{id}", h.HandleUpdateGroup)
		r.Delete("/groups/{id}", h.HandleDeleteGroup)
	})
}
