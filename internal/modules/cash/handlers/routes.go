package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers cash routes on the given router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/cash", func(r chi.Router) {
		r.Get("/", h.HandleGetAccounts)
		r.Post("/deposit", h.HandleDeposit)
		r.Post("/withdraw", h.HandleWithdraw)
		r.Post("/exchange", h.HandleExchange)
		r.Post("/dividend", h.HandleDividend)
	})
}
