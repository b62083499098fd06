package stats

import (
	"context"
	"log/slog"

	"github.com/duelgrid/duelgrid/internal/dependencies/clock"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/storage"
)

// Recorder persists completed-match results: win/loss/draw counters per
// username plus an append-only history record. Recording is fire-and-forget
// from the engine's perspective; storage failures are logged and swallowed
// so they can never affect session teardown.
type Recorder struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewRecorder creates a stats recorder
func NewRecorder(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Recorder {
	return &Recorder{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// RecordResult records one terminal session. The outcome is from the first
// player's perspective: win means first beat second, loss the reverse.
func (r *Recorder) RecordResult(ctx context.Context, winner string, first, second string, outcome model.Outcome) {
	if err := r.storage.IncrementStats(ctx, first, outcome); err != nil {
		r.logger.Error("failed to record stats",
			slog.String("username", first),
			slog.String("error", err.Error()),
		)
	}
	if err := r.storage.IncrementStats(ctx, second, invert(outcome)); err != nil {
		r.logger.Error("failed to record stats",
			slog.String("username", second),
			slog.String("error", err.Error()),
		)
	}

	record := &model.MatchRecord{
		Players:    [2]string{first, second},
		Result:     outcome,
		Winner:     winner,
		FinishedAt: r.clock.Now(),
	}
	if err := r.storage.AppendMatch(ctx, record); err != nil {
		r.logger.Error("failed to record match history",
			slog.String("first", first),
			slog.String("second", second),
			slog.String("error", err.Error()),
		)
	}

	r.logger.Info("match result recorded",
		slog.String("first", first),
		slog.String("second", second),
		slog.String("outcome", string(outcome)),
		slog.String("winner", winner),
	)
}

// invert flips an outcome to the opposing player's perspective
func invert(outcome model.Outcome) model.Outcome {
	switch outcome {
	case model.OutcomeWin:
		return model.OutcomeLoss
	case model.OutcomeLoss:
		return model.OutcomeWin
	default:
		return model.OutcomeDraw
	}
}
