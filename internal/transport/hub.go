package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/duelgrid/duelgrid/internal/model"
)

// Hub routes events to connected clients over server-sent events. It is the
// process-local implementation of the Notifier the engine depends on.
type Hub struct {
	mu     sync.RWMutex
	conns  map[model.ConnectionID]*Conn
	logger *slog.Logger
}

// Ensure Hub implements Notifier
var _ Notifier = (*Hub)(nil)

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[model.ConnectionID]*Conn),
		logger: logger,
	}
}

// Register creates and tracks a connection. Registering an id that is
// already present replaces the old connection and closes its stream.
func (h *Hub) Register(connID model.ConnectionID) *Conn {
	conn := &Conn{
		id:          connID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}

	h.mu.Lock()
	if old, ok := h.conns[connID]; ok {
		close(old.send)
	}
	h.conns[connID] = conn
	total := len(h.conns)
	h.mu.Unlock()

	h.logger.Info("connection registered",
		slog.String("connection_id", string(connID)),
		slog.Int("total_connections", total),
	)
	return conn
}

// Unregister removes a connection and closes its stream; idempotent
func (h *Hub) Unregister(conn *Conn) {
	h.mu.Lock()
	current, ok := h.conns[conn.id]
	if !ok || current != conn {
		h.mu.Unlock()
		return
	}
	delete(h.conns, conn.id)
	close(conn.send)
	total := len(h.conns)
	h.mu.Unlock()

	h.logger.Info("connection unregistered",
		slog.String("connection_id", string(conn.id)),
		slog.Duration("connection_duration", time.Since(conn.connectedAt)),
		slog.Int("total_connections", total),
	)
}

// Notify sends an event to a single connection. Slow consumers have events
// dropped rather than blocking the caller.
func (h *Hub) Notify(connID model.ConnectionID, event model.EventType, payload any) {
	msg, err := formatSSEMessage(event, payload)
	if err != nil {
		h.logger.Error("failed to encode event",
			slog.String("event", string(event)),
			slog.String("error", err.Error()),
		)
		return
	}

	// The send must happen under the read lock: channels are only ever
	// closed under the write lock, so holding it here keeps the send and
	// any close mutually exclusive.
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[connID]
	if !ok {
		return
	}

	select {
	case conn.send <- msg:
	default:
		h.logger.Warn("event dropped - connection buffer full",
			slog.String("connection_id", string(connID)),
			slog.String("event", string(event)),
		)
	}
}

// BroadcastToSession sends an event to both participants of a session
func (h *Hub) BroadcastToSession(session *model.Session, event model.EventType, payload any) {
	for _, player := range session.Players {
		h.Notify(player.ConnectionID, event, payload)
	}
}

// ConnCount returns the number of registered connections
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// formatSSEMessage renders an event as an SSE frame with a JSON data line
func formatSSEMessage(event model.EventType, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, data)), nil
}
