package model

import "time"

// SessionID uniquely identifies a session
type SessionID string

// Seat identifies which side of a session a player occupies
type Seat int

const (
	SeatNone Seat = iota
	SeatFirst
	SeatSecond
)

// Other returns the opposing seat
func (s Seat) Other() Seat {
	switch s {
	case SeatFirst:
		return SeatSecond
	case SeatSecond:
		return SeatFirst
	default:
		return SeatNone
	}
}

// Turn represents whose move it is, or that the session has ended
type Turn string

const (
	TurnFirstPlayer  Turn = "first_player"
	TurnSecondPlayer Turn = "second_player"
	TurnGameOver     Turn = "game_over"
)

// Seat returns the seat a turn value corresponds to
func (t Turn) Seat() Seat {
	switch t {
	case TurnFirstPlayer:
		return SeatFirst
	case TurnSecondPlayer:
		return SeatSecond
	default:
		return SeatNone
	}
}

// TurnForSeat returns the turn value for a seat
func TurnForSeat(s Seat) Turn {
	if s == SeatSecond {
		return TurnSecondPlayer
	}
	return TurnFirstPlayer
}

// Move is a requested board position
type Move struct {
	Row int
	Col int
}

// MoveRecord is an applied move in a session's log
type MoveRecord struct {
	Seat      Seat
	Move      Move
	AppliedAt time.Time
}

// Session is one two-player match. Players are ordered: index 0 is the
// first-mover, index 1 the second-mover. Mutable fields (Board, Turn,
// MoveLog, LastActivityAt) are serialized by the registry's per-session lock.
type Session struct {
	ID             SessionID
	Players        [2]Player
	Board          Board
	Turn           Turn
	MoveLog        []MoveRecord
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// SeatOf resolves which seat a connection occupies, or SeatNone
func (s *Session) SeatOf(connID ConnectionID) Seat {
	if s.Players[0].ConnectionID == connID {
		return SeatFirst
	}
	if s.Players[1].ConnectionID == connID {
		return SeatSecond
	}
	return SeatNone
}

// PlayerAt returns the player in the given seat
func (s *Session) PlayerAt(seat Seat) Player {
	if seat == SeatSecond {
		return s.Players[1]
	}
	return s.Players[0]
}

// Over reports whether the session has reached a terminal state
func (s *Session) Over() bool {
	return s.Turn == TurnGameOver
}

// MoveOutcome is the result of applying a move to a session
type MoveOutcome struct {
	Session  *Session
	Board    Board
	NextTurn Turn
	Terminal bool
	Draw     bool
	Winner   Seat // SeatNone unless a winner was established
}
