package model

import "errors"

// Common errors used across the application
var (
	// Queue errors
	ErrDuplicateConnection = errors.New("connection is already queued")
	ErrNotQueued           = errors.New("connection is not in the queue")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrWrongSession    = errors.New("connection is not a participant in this session")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrGameOver        = errors.New("session is already over")

	// Move errors
	ErrOutOfBounds  = errors.New("move is outside the board")
	ErrCellOccupied = errors.New("cell is already occupied")

	// Join payload errors
	ErrInvalidPlayer = errors.New("invalid player data")

	// Stats errors
	ErrStatsNotFound = errors.New("no stats recorded for player")
)
