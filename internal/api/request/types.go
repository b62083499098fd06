package request

// JoinQueueRequest is the request body for joining the matchmaking queue
type JoinQueueRequest struct {
	Username     string `json:"username"`
	SkillLevel   int    `json:"skill_level"`
	Region       string `json:"region"`
	ConnectionID string `json:"connection_id"`
}

// LeaveQueueRequest is the request body for leaving the queue
type LeaveQueueRequest struct {
	ConnectionID string `json:"connection_id"`
}

// MoveRequest is the request body for submitting a move
type MoveRequest struct {
	ConnectionID string `json:"connection_id"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
}

// DisconnectRequest is the request body for reporting a dropped connection
type DisconnectRequest struct {
	ConnectionID string `json:"connection_id"`
}
