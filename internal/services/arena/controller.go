package arena

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/lifecycle"
	"github.com/duelgrid/duelgrid/internal/services/queue"
	"github.com/duelgrid/duelgrid/internal/services/session"
	"github.com/duelgrid/duelgrid/internal/services/stats"
	"github.com/duelgrid/duelgrid/internal/transport"
)

// Controller exposes the boundary commands the engine accepts: joinQueue,
// leaveQueue, submitMove and disconnect. It orchestrates the queue, session
// registry, lifecycle supervisor, stats recorder and transport.
type Controller struct {
	queue      *queue.Service
	registry   *session.Registry
	supervisor *lifecycle.Supervisor
	recorder   *stats.Recorder
	notifier   transport.Notifier
	logger     *slog.Logger
}

// NewController creates the arena controller
func NewController(
	q *queue.Service,
	registry *session.Registry,
	supervisor *lifecycle.Supervisor,
	recorder *stats.Recorder,
	notifier transport.Notifier,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		queue:      q,
		registry:   registry,
		supervisor: supervisor,
		recorder:   recorder,
		notifier:   notifier,
		logger:     logger,
	}
}

// JoinQueue validates and enqueues a player, then runs a pairing attempt.
// If a pair forms, both players' queue timers are canceled, a session is
// created and both sides are notified of the match.
func (c *Controller) JoinQueue(ctx context.Context, player model.Player) error {
	if err := validatePlayer(player); err != nil {
		return err
	}

	if err := c.queue.Enqueue(player); err != nil {
		return err
	}
	c.supervisor.WatchQueued(player.ConnectionID)
	c.notifier.Notify(player.ConnectionID, model.EventQueueJoined, model.MessagePayload{
		Message: fmt.Sprintf("%s added to the queue", player.Username),
	})

	c.tryMatch(ctx)
	return nil
}

// LeaveQueue removes a connection from the queue; a no-op if absent
func (c *Controller) LeaveQueue(ctx context.Context, connID model.ConnectionID) error {
	c.supervisor.UnwatchQueued(connID)
	if !c.queue.RemoveByConnection(connID) {
		return model.ErrNotQueued
	}
	c.notifier.Notify(connID, model.EventQueueLeft, model.MessagePayload{
		Message: "left the queue",
	})
	return nil
}

// SubmitMove adjudicates one move. Both players receive the updated board;
// a terminal move additionally triggers game-over notifications, exactly one
// stats/history record, and session teardown.
func (c *Controller) SubmitMove(ctx context.Context, sessionID model.SessionID, connID model.ConnectionID, move model.Move) (model.MoveOutcome, error) {
	outcome, err := c.registry.ApplyMove(sessionID, connID, move)
	if err != nil {
		return model.MoveOutcome{}, err
	}

	sess := outcome.Session
	c.notifier.BroadcastToSession(sess, model.EventGameUpdate, model.GameUpdatePayload{
		SessionID: sess.ID,
		Board:     outcome.Board,
		Turn:      outcome.NextTurn,
	})

	if !outcome.Terminal {
		c.supervisor.WatchSession(sessionID)
		return outcome, nil
	}

	// Only one racing move can observe the terminal transition, so the
	// result is recorded exactly once per session
	c.supervisor.UnwatchSession(sessionID)

	winner := ""
	result := model.OutcomeDraw
	switch outcome.Winner {
	case model.SeatFirst:
		winner = sess.Players[0].Username
		result = model.OutcomeWin
	case model.SeatSecond:
		winner = sess.Players[1].Username
		result = model.OutcomeLoss
	}

	c.notifier.BroadcastToSession(sess, model.EventGameOver, model.GameOverPayload{
		SessionID: sess.ID,
		Board:     outcome.Board,
		Draw:      outcome.Draw,
		Winner:    winner,
	})
	c.recorder.RecordResult(ctx, winner, sess.Players[0].Username, sess.Players[1].Username, result)
	c.registry.Destroy(sessionID)

	return outcome, nil
}

// GetSession returns a snapshot of a live session
func (c *Controller) GetSession(ctx context.Context, sessionID model.SessionID) (*model.Session, error) {
	return c.registry.Get(sessionID)
}

// Disconnect handles a dropped connection. It always wins over in-flight
// game actions: the queue entry or session the connection occupied is gone
// when it returns.
func (c *Controller) Disconnect(ctx context.Context, connID model.ConnectionID) {
	c.supervisor.Disconnect(connID)
}

// tryMatch runs one pairing attempt and, on success, promotes the pair into
// a session
func (c *Controller) tryMatch(ctx context.Context) {
	first, second, ok := c.queue.TryMatch()
	if !ok {
		return
	}

	c.supervisor.UnwatchQueued(first.ConnectionID)
	c.supervisor.UnwatchQueued(second.ConnectionID)

	sess := c.registry.Create(first, second)
	c.supervisor.WatchSession(sess.ID)

	c.notifier.Notify(first.ConnectionID, model.EventMatchFound, model.MatchFoundPayload{
		SessionID: sess.ID,
		Seat:      model.SeatFirst,
		Opponent:  second.Username,
		Turn:      sess.Turn,
	})
	c.notifier.Notify(second.ConnectionID, model.EventMatchFound, model.MatchFoundPayload{
		SessionID: sess.ID,
		Seat:      model.SeatSecond,
		Opponent:  first.Username,
		Turn:      sess.Turn,
	})

	c.logger.Info("match started",
		slog.String("session_id", string(sess.ID)),
		slog.String("first", first.Username),
		slog.String("second", second.Username),
	)
}

// validatePlayer enforces the join payload requirements
func validatePlayer(player model.Player) error {
	if player.Username == "" || player.Region == "" || player.ConnectionID == "" {
		return model.ErrInvalidPlayer
	}
	// Zero means the field was never supplied
	if player.SkillLevel <= 0 {
		return model.ErrInvalidPlayer
	}
	return nil
}
