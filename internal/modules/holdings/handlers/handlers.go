// Package handlers provides HTTP handlers for holding operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/holdings"
)

// Handler handles holdings HTTP requests
type Handler struct {
	holdingsService *holdings.Service
	log             zerolog.Logger
}

// NewHandler creates a new holdings handler
func NewHandler(holdingsService *holdings.Service, log zerolog.Logger) *Handler {
	return &Handler{
		holdingsService: holdingsService,
		log:             log.With().Str("handler", "holdings").Logger(),
	}
}

// TransactionRequest represents a request to record a transaction
type TransactionRequest struct {
	Type          string  `json:"type"`
	Date          string  `json:"date"`
	Shares        float64 `json:"shares"`
	PricePerShare float64 `json:"price_per_share"`
	Fees          float64 `json:"fees"`
	Note          string  `json:"note"`
}

// PriceRequest represents a request to update a holding's market price
type PriceRequest struct {
	Price float64 `json:"price"`
}

// HandleGetHoldings handles GET /api/holdings
func (h *Handler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	list, err := h.holdingsService.GetAllWithCalculations()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get holdings")
		http.Error(w, "Failed to get holdings", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": list,
		"metadata": map[string]interface{}{
			"count":     len(list),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetHolding handles GET /api/holdings/{id}
func (h *Handler) HandleGetHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	holding, err := h.holdingsService.GetByID(id)
	if err != nil {
		http.Error(w, "Holding not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": holding,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleCreateHolding handles POST /api/holdings
func (h *Handler) HandleCreateHolding(w http.ResponseWriter, r *http.Request) {
	var holding domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.holdingsService.Create(&holding); err != nil {
		h.log.Error().Err(err).Msg("Failed to create holding")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": holding,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleUpdateHolding handles PUT /api/holdings/{id}
func (h *Handler) HandleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var holding domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	holding.ID = id

	if err := h.holdingsService.Update(&holding); err != nil {
		h.log.Error().Err(err).Msg("Failed to update holding")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": holding,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleDeleteHolding handles DELETE /api/holdings/{id}
func (h *Handler) HandleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.holdingsService.Delete(id); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete holding")
		http.Error(w, "Failed to delete holding", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddTransaction handles POST /api/holdings/{id}/transactions
func (h *Handler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	tx := domain.Transaction{
		HoldingID:     id,
		Type:          domain.TransactionType(req.Type),
		Date:          date,
		Shares:        req.Shares,
		PricePerShare: req.PricePerShare,
		Fees:          req.Fees,
		Note:          req.Note,
	}

	if err := h.holdingsService.RecordTransaction(&tx); err != nil {
		h.log.Error().Err(err).Msg("Failed to record transaction")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": tx,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleUpdatePrice handles PUT /api/holdings/{id}/price
func (h *Handler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.holdingsService.UpdatePrice(id, req.Price); err != nil {
		h.log.Error().Err(err).Msg("Failed to update price")
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
