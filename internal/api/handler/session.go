package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/duelgrid/duelgrid/internal/api/request"
	"github.com/duelgrid/duelgrid/internal/api/response"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/arena"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	arena *arena.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(arena *arena.Controller) *SessionHandler {
	return &SessionHandler{arena: arena}
}

// Get handles GET /api/v1/sessions/{session_id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["session_id"])

	session, err := h.arena.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Move handles POST /api/v1/sessions/{session_id}/moves
func (h *SessionHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["session_id"])

	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnectionID == "" {
		WriteError(w, NewInvalidRequestError("connection_id is required"))
		return
	}

	move := model.Move{Row: req.Row, Col: req.Col}
	outcome, err := h.arena.SubmitMove(r.Context(), id, model.ConnectionID(req.ConnectionID), move)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.MoveResponse{
		Session:  response.SessionFromModel(outcome.Session),
		Terminal: outcome.Terminal,
		Draw:     outcome.Draw,
	}
	if outcome.Winner != model.SeatNone {
		resp.Winner = outcome.Session.PlayerAt(outcome.Winner).Username
	}

	response.JSON(w, http.StatusOK, resp)
}
