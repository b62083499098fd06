package model

import "time"

// Outcome is a completed match's result from the first player's perspective
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// PlayerStats are the accumulated counters for a username
type PlayerStats struct {
	Username string
	Wins     int
	Losses   int
	Draws    int
}

// MatchRecord is an append-only record of a completed match
type MatchRecord struct {
	Players    [2]string // usernames, first-mover then second-mover
	Result     Outcome
	Winner     string // empty for draws
	FinishedAt time.Time
}
