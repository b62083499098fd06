package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/duelgrid/duelgrid/internal/api/response"
	"github.com/duelgrid/duelgrid/internal/storage"
)

// defaultHistoryLimit bounds history responses when no limit is given
const defaultHistoryLimit = 20

// StatsHandler handles player stats and match history endpoints
type StatsHandler struct {
	storage storage.Storage
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store storage.Storage) *StatsHandler {
	return &StatsHandler{storage: store}
}

// GetStats handles GET /api/v1/stats/{username}
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	stats, err := h.storage.GetStats(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(*stats))
}

// GetHistory handles GET /api/v1/history/{username}
func (h *StatsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := h.storage.GetHistory(r.Context(), username, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(username, records))
}
