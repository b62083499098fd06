package rules

import "github.com/duelgrid/duelgrid/internal/model"

// Result is the outcome of applying a legal move
type Result struct {
	Board  model.Board
	Winner model.Seat // SeatNone unless this move established a winner
	Draw   bool       // true if the board is exhausted with no winner
}

// Terminal reports whether the result ends the session
func (r Result) Terminal() bool {
	return r.Draw || r.Winner != model.SeatNone
}

// Ruleset is the pluggability seam for game rules. Implementations must be
// pure: Apply never mutates the input board and holds no state between calls.
// Turn order is the session registry's concern, not the ruleset's.
type Ruleset interface {
	// Name identifies the ruleset
	Name() string

	// NewBoard returns the initial board for a fresh session
	NewBoard() model.Board

	// Apply validates a move against the board and returns the resulting
	// state. It returns model.ErrOutOfBounds or model.ErrCellOccupied for
	// illegal moves, leaving the input board untouched.
	Apply(board model.Board, seat model.Seat, move model.Move) (Result, error)
}
