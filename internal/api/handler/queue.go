package handler

import (
	"encoding/json"
	"net/http"

	"github.com/duelgrid/duelgrid/internal/api/request"
	"github.com/duelgrid/duelgrid/internal/api/response"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/arena"
)

// QueueHandler handles matchmaking queue endpoints
type QueueHandler struct {
	arena *arena.Controller
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(arena *arena.Controller) *QueueHandler {
	return &QueueHandler{arena: arena}
}

// Join handles POST /api/v1/queue/join
func (h *QueueHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player := model.Player{
		Username:     req.Username,
		SkillLevel:   req.SkillLevel,
		Region:       req.Region,
		ConnectionID: model.ConnectionID(req.ConnectionID),
	}

	if err := h.arena.JoinQueue(r.Context(), player); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusAccepted, response.QueueJoinedResponse{
		Queued:       true,
		ConnectionID: req.ConnectionID,
	})
}

// Leave handles POST /api/v1/queue/leave
func (h *QueueHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req request.LeaveQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnectionID == "" {
		WriteError(w, NewInvalidRequestError("connection_id is required"))
		return
	}

	if err := h.arena.LeaveQueue(r.Context(), model.ConnectionID(req.ConnectionID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Disconnect handles POST /api/v1/connections/disconnect
func (h *QueueHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	var req request.DisconnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnectionID == "" {
		WriteError(w, NewInvalidRequestError("connection_id is required"))
		return
	}

	h.arena.Disconnect(r.Context(), model.ConnectionID(req.ConnectionID))
	response.NoContent(w)
}
