package memory

import (
	"context"
	"sync"

	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	stats   map[string]*model.PlayerStats
	history map[string][]*model.MatchRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		stats:   make(map[string]*model.PlayerStats),
		history: make(map[string][]*model.MatchRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) IncrementStats(ctx context.Context, username string, outcome model.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, ok := s.stats[username]
	if !ok {
		stats = &model.PlayerStats{Username: username}
		s.stats[username] = stats
	}

	switch outcome {
	case model.OutcomeWin:
		stats.Wins++
	case model.OutcomeLoss:
		stats.Losses++
	case model.OutcomeDraw:
		stats.Draws++
	}
	return nil
}

func (s *Storage) GetStats(ctx context.Context, username string) (*model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.stats[username]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	out := *stats
	return &out, nil
}

// History operations

func (s *Storage) AppendMatch(ctx context.Context, record *model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *record
	// Newest first, as the history endpoint serves it
	for i, username := range record.Players {
		if i == 1 && username == record.Players[0] {
			break
		}
		s.history[username] = append([]*model.MatchRecord{&rec}, s.history[username]...)
	}
	return nil
}

func (s *Storage) GetHistory(ctx context.Context, username string, limit int) ([]*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.history[username]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	out := make([]*model.MatchRecord, len(records))
	for i, r := range records {
		rec := *r
		out[i] = &rec
	}
	return out, nil
}
