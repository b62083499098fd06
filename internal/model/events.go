package model

// EventType identifies the type of event delivered to a connection
type EventType string

const (
	// Queue events
	EventQueueJoined  EventType = "queue-joined"
	EventQueueLeft    EventType = "queue-left"
	EventQueueTimeout EventType = "queue-timeout"

	// Session events
	EventMatchFound           EventType = "match-found"
	EventGameUpdate           EventType = "game-update"
	EventGameOver             EventType = "game-over"
	EventSessionTimeout       EventType = "session-timeout"
	EventOpponentDisconnected EventType = "opponent-disconnected"
)

// MatchFoundPayload is sent to both players when a session is created
type MatchFoundPayload struct {
	SessionID SessionID `json:"session_id"`
	Seat      Seat      `json:"seat"`
	Opponent  string    `json:"opponent"`
	Turn      Turn      `json:"turn"`
}

// GameUpdatePayload is broadcast to both players after each applied move
type GameUpdatePayload struct {
	SessionID SessionID `json:"session_id"`
	Board     Board     `json:"board"`
	Turn      Turn      `json:"turn"`
}

// GameOverPayload is broadcast when a session reaches a terminal state
type GameOverPayload struct {
	SessionID SessionID `json:"session_id"`
	Board     Board     `json:"board"`
	Draw      bool      `json:"draw"`
	Winner    string    `json:"winner,omitempty"`
}

// MessagePayload carries a human-readable notice for queue and timeout events
type MessagePayload struct {
	Message string `json:"message"`
}
