package model

import "time"

// ConnectionID is the opaque handle for a player's transport endpoint.
// It is the identity used for matching and routing; a username may reconnect
// under a new connection and is not required to be unique system-wide.
type ConnectionID string

// Player represents a participant as submitted at queue-join time
type Player struct {
	Username     string
	SkillLevel   int
	Region       string
	ConnectionID ConnectionID
}

// QueueEntry is a waiting player plus its arrival timestamp
type QueueEntry struct {
	Player   Player
	JoinedAt time.Time
}
