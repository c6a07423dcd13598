package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers holdings routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holdings", func(r chi.Router) {
		r.Get("/", h.HandleGetHoldings)
		r.Post("/", h.HandleCreateHolding)
		r.Get("/{id}", h.HandleGetHolding)
		r.Put("/{id}", h.HandleUpdateHolding)
		r.Delete("/{id}", h.HandleDeleteHolding)
		r.Post("/{id}/transactions", h.HandleAddTransaction)
		r.Put("/{id}/price", h.HandleUpdatePrice)
	})
}
