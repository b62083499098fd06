package storage

import (
	"context"

	"github.com/duelgrid/duelgrid/internal/model"
)

// Storage is the persistence interface for player stats and match history.
// The session engine only writes through it after a terminal outcome;
// failures there are logged and never affect session semantics.
type Storage interface {
	// Stats operations
	IncrementStats(ctx context.Context, username string, outcome model.Outcome) error
	GetStats(ctx context.Context, username string) (*model.PlayerStats, error)

	// History operations
	AppendMatch(ctx context.Context, record *model.MatchRecord) error
	GetHistory(ctx context.Context, username string, limit int) ([]*model.MatchRecord, error)
}
