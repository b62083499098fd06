package queue

import (
	"log/slog"
	"sync"

	"github.com/duelgrid/duelgrid/internal/dependencies/clock"
	"github.com/duelgrid/duelgrid/internal/model"
)

// DefaultSkillTolerance is the maximum skill-level difference for a pairing
const DefaultSkillTolerance = 2

// MatchPredicate decides whether two waiting players may be paired.
// It is the replaceable matching policy.
type MatchPredicate func(a, b model.Player) bool

// SkillRegionPredicate pairs players whose skill levels differ by at most
// tolerance and whose regions are equal
func SkillRegionPredicate(tolerance int) MatchPredicate {
	return func(a, b model.Player) bool {
		diff := a.SkillLevel - b.SkillLevel
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance && a.Region == b.Region
	}
}

// Service is the matchmaking queue: an arrival-ordered collection of waiting
// players. All operations share a single mutual-exclusion domain so that
// concurrent enqueues, removals and pairing attempts never double-match a
// player or lose one.
type Service struct {
	mu        sync.Mutex
	entries   []model.QueueEntry
	predicate MatchPredicate
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a matchmaking queue with the given pairing policy
func New(predicate MatchPredicate, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		predicate: predicate,
		clock:     clk,
		logger:    logger,
	}
}

// Enqueue appends a player in arrival order. It fails with
// ErrDuplicateConnection if the connection is already waiting.
func (s *Service) Enqueue(player model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Player.ConnectionID == player.ConnectionID {
			return model.ErrDuplicateConnection
		}
	}

	s.entries = append(s.entries, model.QueueEntry{
		Player:   player,
		JoinedAt: s.clock.Now(),
	})

	s.logger.Info("player queued",
		slog.String("username", player.Username),
		slog.String("connection_id", string(player.ConnectionID)),
		slog.String("region", player.Region),
		slog.Int("skill_level", player.SkillLevel),
		slog.Int("queue_length", len(s.entries)),
	)
	return nil
}

// TryMatch scans for the earliest compatible pair and removes it from the
// queue. The outer index walks arrival order, the inner index the later
// arrivals, so the earliest compatible pair wins; strict FIFO is not
// guaranteed when an early arrival has no compatible partner. The scan is
// O(n^2), which is fine for the queue sizes a single pairing domain serves.
func (s *Service) TryMatch() (model.Player, model.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < len(s.entries)-1; i++ {
		for j := i + 1; j < len(s.entries); j++ {
			first := s.entries[i].Player
			second := s.entries[j].Player
			if !s.predicate(first, second) {
				continue
			}

			// Remove j before i so i's index stays valid
			s.entries = append(s.entries[:j], s.entries[j+1:]...)
			s.entries = append(s.entries[:i], s.entries[i+1:]...)

			s.logger.Info("players matched",
				slog.String("first", first.Username),
				slog.String("second", second.Username),
				slog.Int("queue_length", len(s.entries)),
			)
			return first, second, true
		}
	}
	return model.Player{}, model.Player{}, false
}

// RemoveByConnection removes the entry for a connection if present.
// It is idempotent and reports whether an entry was removed.
func (s *Service) RemoveByConnection(connID model.ConnectionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.Player.ConnectionID == connID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.logger.Info("player removed from queue",
				slog.String("connection_id", string(connID)),
				slog.Int("queue_length", len(s.entries)),
			)
			return true
		}
	}
	return false
}

// Contains reports whether a connection is currently waiting
func (s *Service) Contains(connID model.ConnectionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.Player.ConnectionID == connID {
			return true
		}
	}
	return false
}

// Len returns the number of waiting players
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
