// Package handlers provides HTTP handlers for allocation management.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/allocation"
)

// Handler handles allocation HTTP requests
type Handler struct {
	allocationService *allocation.Service
	log               zerolog.Logger
}

// NewHandler creates a new allocation handler
func NewHandler(allocationService *allocation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		allocationService: allocationService,
		log:               log.With().Str("handler", "allocation").Logger(),
	}
}

// HandleGetAllocation handles GET /api/allocation
func (h *Handler) HandleGetAllocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.allocationService.GetAllocation()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to calculate allocation")
		http.Error(w, "Failed to calculate allocation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetGroups handles GET /api/allocation/groups
func (h *Handler) HandleGetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.allocationService.GetGroups()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get groups")
		http.Error(w, "Failed to get groups", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": groups,
		"metadata": map[string]interface{}{
			"count":     len(groups),
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleCreateGroup handles POST /api/allocation/groups
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var group domain.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.allocationService.CreateGroup(&group); err != nil {
		h.log.Error().Err(err).Msg("Failed to create group")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": group,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleUpdateGroup handles PUT /api/allocation/groups/{id}
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var group domain.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	group.ID = id

	if err := h.allocationService.UpdateGroup(&group); err != nil {
		h.log.Error().Err(err).Msg("Failed to update group")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": group,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleDeleteGroup handles DELETE /api/allocation/groups/{id}
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.allocationService.DeleteGroup(id); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete group")
		http.Error(w, "Failed to delete group", http.StatusInternalServerError)
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
