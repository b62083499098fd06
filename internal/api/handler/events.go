package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/arena"
	"github.com/duelgrid/duelgrid/internal/transport"
)

// pingPeriod is the time between keepalive comments on an event stream
const pingPeriod = 15 * time.Second

// EventsHandler serves the per-connection SSE event stream
type EventsHandler struct {
	hub   *transport.Hub
	arena *arena.Controller
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *transport.Hub, arena *arena.Controller) *EventsHandler {
	return &EventsHandler{hub: hub, arena: arena}
}

// Stream handles GET /api/v1/events/{connection_id}.
// The stream stays open until the client goes away; a closed stream is
// treated as a disconnect and tears down any queue slot or session the
// connection holds.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	connID := model.ConnectionID(mux.Vars(r)["connection_id"])
	if connID == "" {
		WriteError(w, NewInvalidRequestError("connection_id is required"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	conn := h.hub.Register(connID)
	// When the hub closes our channel a newer stream has taken over the
	// connection id; in that case the id is still live and must not be
	// torn down.
	replaced := false
	defer func() {
		h.hub.Unregister(conn)
		if !replaced {
			h.arena.Disconnect(r.Context(), connID)
		}
	}()

	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-conn.Messages():
			if !ok {
				replaced = true
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
