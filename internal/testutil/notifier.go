package testutil

import (
	"sync"

	"github.com/duelgrid/duelgrid/internal/model"
)

// SentEvent is one recorded notification
type SentEvent struct {
	ConnID  model.ConnectionID
	Event   model.EventType
	Payload any
}

// RecordingNotifier captures notifications for assertions in tests
type RecordingNotifier struct {
	mu     sync.Mutex
	events []SentEvent
}

// NewRecordingNotifier creates an empty RecordingNotifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify records a single-connection event
func (n *RecordingNotifier) Notify(connID model.ConnectionID, event model.EventType, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, SentEvent{ConnID: connID, Event: event, Payload: payload})
}

// BroadcastToSession records one event per participant
func (n *RecordingNotifier) BroadcastToSession(session *model.Session, event model.EventType, payload any) {
	for _, player := range session.Players {
		n.Notify(player.ConnectionID, event, payload)
	}
}

// Events returns a copy of everything recorded so far
func (n *RecordingNotifier) Events() []SentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentEvent, len(n.events))
	copy(out, n.events)
	return out
}

// EventsFor returns the event types delivered to a connection, in order
func (n *RecordingNotifier) EventsFor(connID model.ConnectionID) []model.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []model.EventType
	for _, e := range n.events {
		if e.ConnID == connID {
			out = append(out, e.Event)
		}
	}
	return out
}

// Count returns how many times an event type was delivered to a connection
func (n *RecordingNotifier) Count(connID model.ConnectionID, event model.EventType) int {
	count := 0
	for _, e := range n.EventsFor(connID) {
		if e == event {
			count++
		}
	}
	return count
}
