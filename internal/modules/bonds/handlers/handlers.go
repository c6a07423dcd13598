// Package handlers provides HTTP handlers for bond operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/bonds"
)

// Handler handles bond HTTP requests
type Handler struct {
	bondsService *bonds.Service
	log          zerolog.Logger
}

// NewHandler creates a new bonds handler
func NewHandler(bondsService *bonds.Service, log zerolog.Logger) *Handler {
	return &Handler{
		bondsService: bondsService,
		log:          log.With().Str("handler", "bonds").Logger(),
	}
}

// HandleGetBonds handles GET /api/bonds
func (h *Handler) HandleGetBonds(w http.ResponseWriter, r *http.Request) {
	list, err := h.bondsService.GetAllWithCalculations()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get bonds")
		http.Error(w, "Failed to get bonds", http.StatusInternalServerError)
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

// HandleGetBond handles GET /api/bonds/{id}
func (h *Handler) HandleGetBond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bond, err := h.bondsService.GetByID(id)
	if err != nil {
		http.Error(w, "Bond not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": bond,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleCreateBond handles POST /api/bonds
func (h *Handler) HandleCreateBond(w http.ResponseWriter, r *http.Request) {
	var bond domain.Bond
	if err := json.NewDecoder(r.Body).Decode(&bond); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.bondsService.Create(&bond); err != nil {
		h.log.Error().Err(err).Msg("Failed to create bond")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": bond,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleUpdateBond handles PUT /api/bonds/{id}
func (h *Handler) HandleUpdateBond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var bond domain.Bond
	if err := json.NewDecoder(r.Body).Decode(&bond); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	bond.ID = id

	if err := h.bondsService.Update(&bond); err != nil {
		h.log.Error().Err(err).Msg("Failed to update bond")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": bond,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleDeleteBond handles DELETE /api/bonds/{id}
func (h *Handler) HandleDeleteBond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.bondsService.Delete(id); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete bond")
		http.Error(w, "Failed to delete bond", http.StatusInternalServerError)
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
