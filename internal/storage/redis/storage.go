package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/storage"
)

// Field names in the per-player stats hash
const (
	fieldWins   = "wins"
	fieldLosses = "losses"
	fieldDraws  = "draws"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) IncrementStats(ctx context.Context, username string, outcome model.Outcome) error {
	field := fieldDraws
	switch outcome {
	case model.OutcomeWin:
		field = fieldWins
	case model.OutcomeLoss:
		field = fieldLosses
	}
	return s.client.HIncrBy(ctx, statsKey(username), field, 1).Err()
}

func (s *Storage) GetStats(ctx context.Context, username string) (*model.PlayerStats, error) {
	fields, err := s.client.HGetAll(ctx, statsKey(username)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrStatsNotFound
	}

	stats := &model.PlayerStats{Username: username}
	stats.Wins, _ = strconv.Atoi(fields[fieldWins])
	stats.Losses, _ = strconv.Atoi(fields[fieldLosses])
	stats.Draws, _ = strconv.Atoi(fields[fieldDraws])
	return stats, nil
}

// History operations

func (s *Storage) AppendMatch(ctx context.Context, record *model.MatchRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	// One pipeline: push onto both players' lists and trim to the cap
	pipe := s.client.Pipeline()
	for i, username := range record.Players {
		if i == 1 && username == record.Players[0] {
			break
		}
		key := historyKey(username)
		pipe.LPush(ctx, key, data)
		if s.cfg.HistoryLimit > 0 {
			pipe.LTrim(ctx, key, 0, int64(s.cfg.HistoryLimit-1))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHistory(ctx context.Context, username string, limit int) ([]*model.MatchRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	items, err := s.client.LRange(ctx, historyKey(username), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.MatchRecord, 0, len(items))
	for _, item := range items {
		var record model.MatchRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}
