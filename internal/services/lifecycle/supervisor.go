package lifecycle

import (
	"log/slog"
	"sync"
	"time"

	"github.com/duelgrid/duelgrid/internal/dependencies/clock"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/queue"
	"github.com/duelgrid/duelgrid/internal/services/session"
	"github.com/duelgrid/duelgrid/internal/transport"
)

// Config holds the supervisor's timeout settings
type Config struct {
	// QueueTimeout is how long a player may wait unmatched before being
	// dropped from the queue
	QueueTimeout time.Duration

	// SessionTimeout is how long a session may go without a move before
	// being aborted
	SessionTimeout time.Duration
}

// DefaultConfig returns the default timeout settings
func DefaultConfig() Config {
	return Config{
		QueueTimeout:   30 * time.Second,
		SessionTimeout: 10 * time.Minute,
	}
}

// Supervisor owns inactivity timers and disconnect handling. Timers only
// ever target the structure they were armed for: a queue timer that fires
// after its player was matched finds nothing in the queue and is a no-op,
// so cancellation races are benign by construction.
type Supervisor struct {
	mu            sync.Mutex
	queueTimers   map[model.ConnectionID]clock.Timer
	sessionTimers map[model.SessionID]clock.Timer

	queue    *queue.Service
	registry *session.Registry
	notifier transport.Notifier
	clock    clock.Clock
	cfg      Config
	logger   *slog.Logger
}

// NewSupervisor creates a lifecycle supervisor
func NewSupervisor(
	q *queue.Service,
	registry *session.Registry,
	notifier transport.Notifier,
	clk clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Supervisor {
	return &Supervisor{
		queueTimers:   make(map[model.ConnectionID]clock.Timer),
		sessionTimers: make(map[model.SessionID]clock.Timer),
		queue:         q,
		registry:      registry,
		notifier:      notifier,
		clock:         clk,
		cfg:           cfg,
		logger:        logger,
	}
}

// WatchQueued arms the queue-inactivity timer for a freshly queued player
func (s *Supervisor) WatchQueued(connID model.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.queueTimers[connID]; ok {
		t.Stop()
	}
	s.queueTimers[connID] = s.clock.AfterFunc(s.cfg.QueueTimeout, func() {
		s.queueTimedOut(connID)
	})
}

// UnwatchQueued cancels a player's queue timer, if armed
func (s *Supervisor) UnwatchQueued(connID model.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.queueTimers[connID]; ok {
		t.Stop()
		delete(s.queueTimers, connID)
	}
}

func (s *Supervisor) queueTimedOut(connID model.ConnectionID) {
	s.mu.Lock()
	delete(s.queueTimers, connID)
	s.mu.Unlock()

	// A player matched just before the timer fired is gone from the queue
	// already; the removal is then a no-op and nobody is notified
	if !s.queue.RemoveByConnection(connID) {
		return
	}

	s.logger.Info("queued player timed out",
		slog.String("connection_id", string(connID)),
	)
	s.notifier.Notify(connID, model.EventQueueTimeout, model.MessagePayload{
		Message: "removed from the queue due to inactivity",
	})
}

// WatchSession (re)arms the session-inactivity timer. Called on session
// creation and after every successful move.
func (s *Supervisor) WatchSession(sessionID model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.sessionTimers[sessionID]; ok {
		t.Stop()
	}
	s.sessionTimers[sessionID] = s.clock.AfterFunc(s.cfg.SessionTimeout, func() {
		s.sessionTimedOut(sessionID)
	})
}

// UnwatchSession cancels a session's inactivity timer, if armed
func (s *Supervisor) UnwatchSession(sessionID model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.sessionTimers[sessionID]; ok {
		t.Stop()
		delete(s.sessionTimers, sessionID)
	}
}

func (s *Supervisor) sessionTimedOut(sessionID model.SessionID) {
	s.mu.Lock()
	delete(s.sessionTimers, sessionID)
	s.mu.Unlock()

	sess, err := s.registry.Get(sessionID)
	if err != nil || sess.Over() {
		return
	}
	// A move can land between the timer firing and this lookup. A fresh
	// activity stamp means the session is live and the re-armed timer
	// owns it now.
	if s.clock.Now().Sub(sess.LastActivityAt) < s.cfg.SessionTimeout {
		return
	}

	s.logger.Info("session timed out",
		slog.String("session_id", string(sessionID)),
	)
	s.notifier.BroadcastToSession(sess, model.EventSessionTimeout, model.MessagePayload{
		Message: "session ended due to inactivity",
	})
	s.registry.Destroy(sessionID)
}

// Disconnect tears down whatever the connection occupies: its queue entry,
// or its session (notifying the opponent). A connection is never in both,
// but both paths are checked and each is an idempotent no-op when absent.
func (s *Supervisor) Disconnect(connID model.ConnectionID) {
	s.UnwatchQueued(connID)
	s.queue.RemoveByConnection(connID)

	sess, ok := s.registry.FindByConnection(connID)
	if !ok {
		return
	}

	s.UnwatchSession(sess.ID)

	seat := sess.SeatOf(connID)
	opponent := sess.PlayerAt(seat.Other())
	s.notifier.Notify(opponent.ConnectionID, model.EventOpponentDisconnected, model.GameOverPayload{
		SessionID: sess.ID,
		Board:     sess.Board,
	})

	s.logger.Info("session torn down on disconnect",
		slog.String("session_id", string(sess.ID)),
		slog.String("connection_id", string(connID)),
	)
	s.registry.Destroy(sess.ID)
}
