// Package handlers provides HTTP handlers for snapshot operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/foliotracker/folio/internal/domain"
	"github.com/foliotracker/folio/internal/modules/snapshots"
)

// Handler handles snapshot HTTP requests
type Handler struct {
	snapshotsService *snapshots.Service
	log              zerolog.Logger
}

// NewHandler creates a new snapshots handler
func NewHandler(snapshotsService *snapshots.Service, log zerolog.Logger) *Handler {
	return &Handler{
		snapshotsService: snapshotsService,
		log:              log.With().Str("handler", "snapshots").Logger(),
	}
}

// HandleGetSnapshots handles GET /api/snapshots
// Optional from/to query parameters (YYYY-MM-DD) narrow the period.
func (h *Handler) HandleGetSnapshots(w http.ResponseWriter, r *http.Request) {
	var (
		list []domain.Snapshot
		err  error
	)

	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr != "" || toStr != "" {
		from, to, perr := parsePeriod(fromStr, toStr)
		if perr != nil {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		list, err = h.snapshotsService.GetRange(from, to)
	} else {
		list, err = h.snapshotsService.GetAll()
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get snapshots")
		http.Error(w, "Failed to get snapshots", http.StatusInternalServerError)
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

// HandleCreateSnapshot handles POST /api/snapshots
func (h *Handler) HandleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshotsService.CreateSnapshot(domain.SnapshotManual, 0)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create snapshot")
		http.Error(w, "Failed to create snapshot", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": snap,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleDeleteSnapshot handles DELETE /api/snapshots/{id}
func (h *Handler) HandleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.snapshotsService.Delete(id); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete snapshot")
		http.Error(w, "Failed to delete snapshot", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Unix(0, 0).UTC()
	to := time.Now().UTC()

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return from, to, err
		}
		// inclusive end of day
		to = parsed.Add(24*time.Hour - time.Second)
	}

	return from, to, nil
}

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
