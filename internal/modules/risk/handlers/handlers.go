// Package handlers provides HTTP handlers for risk metrics operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/modules/risk"
)

// Handler handles risk HTTP requests
type Handler struct {
	riskService *risk.Service
	log         zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(riskService *risk.Service, log zerolog.Logger) *Handler {
	return &Handler{
		riskService: riskService,
		log:         log.With().Str("handler", "risk").Logger(),
	}
}

// HandleGetMetrics handles GET /api/risk
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.riskService.GetMetrics()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to calculate risk metrics")
		http.Error(w, "Failed to calculate risk metrics", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": metrics,
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
