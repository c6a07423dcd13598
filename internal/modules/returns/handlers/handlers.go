// Package handlers provides HTTP handlers for return calculations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/modules/returns"
)

// Handler handles returns HTTP requests
type Handler struct {
	returnsService *returns.Service
	log            zerolog.Logger
}

// NewHandler creates a new returns handler
func NewHandler(returnsService *returns.Service, log zerolog.Logger) *Handler {
	return &Handler{
		returnsService: returnsService,
		log:            log.With().Str("handler", "returns").Logger(),
	}
}

// HandleGetTWR handles GET /api/returns/twr
// Optional from/to query parameters (YYYY-MM-DD) narrow the period.
// Responds with null data when the series is too short.
func (h *Handler) HandleGetTWR(w http.ResponseWriter, r *http.Request) {
	var (
		result *returns.TWRResult
		err    error
	)

	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr != "" && toStr != "" {
		from, perr := time.Parse("2006-01-02", fromStr)
		if perr != nil {
			http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to, perr := time.Parse("2006-01-02", toStr)
		if perr != nil {
			http.Error(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		result, err = h.returnsService.GetTWRForPeriod(from, to.Add(24*time.Hour-time.Second))
	} else {
		result, err = h.returnsService.GetTWR()
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to calculate TWR")
		http.Error(w, "Failed to calculate TWR", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetXIRR handles GET /api/returns/xirr
func (h *Handler) HandleGetXIRR(w http.ResponseWriter, r *http.Request) {
	result, err := h.returnsService.GetXIRR()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to calculate XIRR")
		http.Error(w, "Failed to calculate XIRR", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"xirr": result,
		},
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
