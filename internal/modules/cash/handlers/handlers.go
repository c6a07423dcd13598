// Package handlers provides HTTP handlers for cash account operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/cash"
)

// Handler handles cash HTTP requests
type Handler struct {
	cashService *cash.Service
	log         zerolog.Logger
}

// NewHandler creates a new cash handler
func NewHandler(cashService *cash.Service, log zerolog.Logger) *Handler {
	return &Handler{
		cashService: cashService,
		log:         log.With().Str("handler", "cash").Logger(),
	}
}

// FlowRequest represents a deposit or withdrawal request
type FlowRequest struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

// ExchangeRequest represents a currency exchange between cash accounts
type ExchangeRequest struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	FromAmount float64 `json:"from_amount"`
	ToAmount   float64 `json:"to_amount"`
	Note       string  `json:"note"`
}

// DividendRequest represents a dividend credit
type DividendRequest struct {
	Currency  string  `json:"currency"`
	Amount    float64 `json:"amount"`
	HoldingID string  `json:"holding_id"`
	Note      string  `json:"note"`
}

// HandleGetAccounts handles GET /api/cash
func (h *Handler) HandleGetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.cashService.GetAccounts()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get cash accounts")
		http.Error(w, "Failed to get cash accounts", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": accounts,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleDeposit handles POST /api/cash/deposit
func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, h.cashService.Deposit)
}

// HandleWithdraw handles POST /api/cash/withdraw
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, h.cashService.Withdraw)
}

// HandleExchange handles POST /api/cash/exchange
func (h *Handler) HandleExchange(w http.ResponseWriter, r *http.Request) {
	var req ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.cashService.Exchange(
		domain.Currency(req.From), domain.Currency(req.To),
		req.FromAmount, req.ToAmount, req.Note)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to exchange")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDividend handles POST /api/cash/dividend
func (h *Handler) HandleDividend(w http.ResponseWriter, r *http.Request) {
	var req DividendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.cashService.RecordDividend(domain.Currency(req.Currency), req.Amount, req.HoldingID, req.Note); err != nil {
		h.log.Error().Err(err).Msg("Failed to record dividend")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFlow(w http.ResponseWriter, r *http.Request, apply func(domain.Currency, float64, string) error) {
	var req FlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := apply(domain.Currency(req.Currency), req.Amount, req.Note); err != nil {
		h.log.Error().Err(err).Msg("Failed to apply cash flow")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
