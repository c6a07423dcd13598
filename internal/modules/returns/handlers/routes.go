package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers return calculation routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/returns", func(r chi.Router) {
		r.Get("/twr", h.HandleGetTWR)
		r.Get("/xirr", h.HandleGetXIRR)
	})
}
