// Package handlers provides HTTP handlers for tax reporting.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/modules/tax"
)

// Handler handles tax HTTP requests
type Handler struct {
	taxService *tax.Service
	log        zerolog.Logger
}

// NewHandler creates a new tax handler
func NewHandler(taxService *tax.Service, log zerolog.Logger) *Handler {
	return &Handler{
		taxService: taxService,
		log:        log.With().Str("handler", "tax").Logger(),
	}
}

// HandleGetReport handles GET /api/tax/report
// An optional year query parameter narrows the report to one tax year.
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	var year int
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}

	report, err := h.taxService.GetReport(year)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build tax report")
		http.Error(w, "Failed to build tax report", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": report,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetOpenLots handles GET /api/tax/lots/{holdingId}
func (h *Handler) HandleGetOpenLots(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "holdingId")

	lots, err := h.taxService.GetOpenLots(holdingID)
	if err != nil {
		http.Error(w, "Holding not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": lots,
		"metadata": map[string]interface{}{
			"count":     len(lots),
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
