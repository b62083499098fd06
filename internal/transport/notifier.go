package transport

import "github.com/duelgrid/duelgrid/internal/model"

// Notifier delivers named events to connections. Delivery is assumed
// at-least-once ordered per connection; callers never wait on confirmation.
type Notifier interface {
	// Notify sends an event to a single connection. Unknown connections
	// are a no-op.
	Notify(connID model.ConnectionID, event model.EventType, payload any)

	// BroadcastToSession sends an event to both participants of a session
	BroadcastToSession(session *model.Session, event model.EventType, payload any)
}
