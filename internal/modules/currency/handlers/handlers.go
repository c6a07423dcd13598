// Package handlers provides HTTP handlers for currency operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/currency"
)

// Handler handles currency HTTP requests
type Handler struct {
	currencyService *currency.Service
	log             zerolog.Logger
}

// NewHandler creates a new currency handler
func NewHandler(currencyService *currency.Service, log zerolog.Logger) *Handler {
	return &Handler{
		currencyService: currencyService,
		log:             log.With().Str("handler", "currency").Logger(),
	}
}

// ConvertRequest represents a request to convert an amount to ILS
type ConvertRequest struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// HandleGetRates handles GET /api/currency/rates
func (h *Handler) HandleGetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.currencyService.GetRates()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get rates")
		http.Error(w, "Failed to get rates", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": rates,
		"metadata": map[string]interface{}{
			"reporting_currency": string(domain.ReportingCurrency),
			"timestamp":          time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleConvert handles POST /api/currency/convert
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	converted, err := h.currencyService.Convert(req.Amount, domain.Currency(req.Currency))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to convert amount")
		http.Error(w, "Failed to convert amount", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"currency":  req.Currency,
			"amount":    req.Amount,
			"converted": converted,
		},
		"metadata": map[string]interface{}{
			"reporting_currency": string(domain.ReportingCurrency),
			"timestamp":          time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleSyncRates handles POST /api/currency/rates/sync
func (h *Handler) HandleSyncRates(w http.ResponseWriter, r *http.Request) {
	if err := h.currencyService.RefreshRates(); err != nil {
		h.log.Warn().Err(err).Msg("Rate refresh finished with errors")
	}

	rates, err := h.currencyService.GetRates()
	if err != nil {
		http.Error(w, "Failed to get rates", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": rates,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
