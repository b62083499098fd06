package session

import (
	"log/slog"
	"sync"

	"github.com/duelgrid/duelgrid/internal/dependencies/clock"
	"github.com/duelgrid/duelgrid/internal/dependencies/random"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/rules"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 12
	// SessionIDAlphabet is the characters used in session ids
	SessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// entry pairs a session with its own lock. Mutations to one session never
// contend with another; the registry lock only guards the map itself.
type entry struct {
	mu      sync.Mutex
	session *model.Session
}

// Registry owns all live sessions: it creates them from matched pairs,
// adjudicates moves through the ruleset, and destroys them on completion
// or abort.
type Registry struct {
	mu      sync.RWMutex
	entries map[model.SessionID]*entry

	ruleset rules.Ruleset
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewRegistry creates a session registry using the given ruleset
func NewRegistry(ruleset rules.Ruleset, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Registry {
	return &Registry{
		entries: make(map[model.SessionID]*entry),
		ruleset: ruleset,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Create registers a new session for a matched pair. The first player moves
// first. Session ids are independent random tokens rather than derived from
// connection ids, so reconnects can never collide with a dead session.
func (r *Registry) Create(first, second model.Player) *model.Session {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var id model.SessionID
	for {
		id = model.SessionID(r.random.String(SessionIDLength, SessionIDAlphabet))
		if _, exists := r.entries[id]; !exists {
			break
		}
	}

	session := &model.Session{
		ID:             id,
		Players:        [2]model.Player{first, second},
		Board:          r.ruleset.NewBoard(),
		Turn:           model.TurnFirstPlayer,
		MoveLog:        []model.MoveRecord{},
		CreatedAt:      now,
		LastActivityAt: now,
	}
	r.entries[id] = &entry{session: session}

	r.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("first_player", first.Username),
		slog.String("second_player", second.Username),
		slog.String("ruleset", r.ruleset.Name()),
	)
	return snapshot(session)
}

// Get returns a snapshot of the session, or ErrSessionNotFound
func (r *Registry) Get(id model.SessionID) (*model.Session, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.session), nil
}

// FindByConnection returns the session a connection participates in, if any.
// The session registry invariant means a connection is in at most one.
func (r *Registry) FindByConnection(connID model.ConnectionID) (*model.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		e.mu.Lock()
		if e.session.SeatOf(connID) != model.SeatNone {
			snap := snapshot(e.session)
			e.mu.Unlock()
			return snap, true
		}
		e.mu.Unlock()
	}
	return nil, false
}

// ApplyMove adjudicates one move. Seat resolution and turn order are checked
// here; move legality is the ruleset's call. Moves for the same session are
// applied one at a time under the session's lock, each seeing the previous
// move's effect. A rejected move leaves board, turn and move log untouched.
func (r *Registry) ApplyMove(id model.SessionID, connID model.ConnectionID, move model.Move) (model.MoveOutcome, error) {
	e, err := r.lookup(id)
	if err != nil {
		return model.MoveOutcome{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	session := e.session

	seat := session.SeatOf(connID)
	if seat == model.SeatNone {
		return model.MoveOutcome{}, model.ErrWrongSession
	}
	if session.Over() {
		return model.MoveOutcome{}, model.ErrGameOver
	}
	if session.Turn.Seat() != seat {
		return model.MoveOutcome{}, model.ErrNotYourTurn
	}

	result, err := r.ruleset.Apply(session.Board, seat, move)
	if err != nil {
		return model.MoveOutcome{}, err
	}

	now := r.clock.Now()
	session.Board = result.Board
	session.MoveLog = append(session.MoveLog, model.MoveRecord{
		Seat:      seat,
		Move:      move,
		AppliedAt: now,
	})
	session.LastActivityAt = now

	outcome := model.MoveOutcome{Board: result.Board}
	if result.Terminal() {
		session.Turn = model.TurnGameOver
		outcome.Terminal = true
		outcome.Draw = result.Draw
		outcome.Winner = result.Winner
	} else {
		session.Turn = model.TurnForSeat(seat.Other())
	}
	outcome.NextTurn = session.Turn
	outcome.Session = snapshot(session)

	return outcome, nil
}

// Destroy removes a session; idempotent
func (r *Registry) Destroy(id model.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; ok {
		delete(r.entries, id)
		r.logger.Info("session destroyed", slog.String("session_id", string(id)))
	}
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) lookup(id model.SessionID) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return e, nil
}

// snapshot copies the session so callers never alias registry-owned state
func snapshot(s *model.Session) *model.Session {
	out := *s
	out.Board = s.Board.Clone()
	out.MoveLog = make([]model.MoveRecord, len(s.MoveLog))
	copy(out.MoveLog, s.MoveLog)
	return &out
}
