package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/duelgrid/duelgrid/internal/dependencies/mocks"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/services/rules"
	"github.com/duelgrid/duelgrid/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	registry *Registry
	first    model.Player
	second   model.Player
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = NewRegistry(rules.NewTicTacToe(), s.clock, s.random, testutil.NopLogger())
	s.first = model.Player{Username: "alice", SkillLevel: 5, Region: "us", ConnectionID: "conn-a"}
	s.second = model.Player{Username: "bob", SkillLevel: 6, Region: "us", ConnectionID: "conn-b"}
}

func (s *RegistrySuite) TestCreateInitializesSession() {
	s.random.QueueString("SESSION00001")

	session := s.registry.Create(s.first, s.second)

	s.Equal(model.SessionID("SESSION00001"), session.ID)
	s.Equal(model.TurnFirstPlayer, session.Turn)
	s.Empty(session.MoveLog)
	s.Equal("alice", session.Players[0].Username)
	s.Equal("bob", session.Players[1].Username)
	s.False(session.Over())
	s.Equal(s.clock.Now(), session.LastActivityAt)
}

func (s *RegistrySuite) TestGetNotFound() {
	_, err := s.registry.Get("missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RegistrySuite) TestApplyMoveWrongSession() {
	session := s.registry.Create(s.first, s.second)

	_, err := s.registry.ApplyMove(session.ID, "conn-stranger", model.Move{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrWrongSession)
}

func (s *RegistrySuite) TestApplyMoveUnknownSession() {
	_, err := s.registry.ApplyMove("missing", "conn-a", model.Move{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RegistrySuite) TestTurnAlternation() {
	session := s.registry.Create(s.first, s.second)

	outcome, err := s.registry.ApplyMove(session.ID, "conn-a", model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Equal(model.TurnSecondPlayer, outcome.NextTurn)

	outcome, err = s.registry.ApplyMove(session.ID, "conn-b", model.Move{Row: 1, Col: 1})
	s.Require().NoError(err)
	s.Equal(model.TurnFirstPlayer, outcome.NextTurn)

	// The same seat never moves twice in a row
	_, err = s.registry.ApplyMove(session.ID, "conn-b", model.Move{Row: 2, Col: 2})
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *RegistrySuite) TestRejectedMoveLeavesStateUntouched() {
	session := s.registry.Create(s.first, s.second)
	_, err := s.registry.ApplyMove(session.ID, "conn-a", model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)

	before, err := s.registry.Get(session.ID)
	s.Require().NoError(err)

	// Occupied cell
	_, err = s.registry.ApplyMove(session.ID, "conn-b", model.Move{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrCellOccupied)

	// Out of bounds
	_, err = s.registry.ApplyMove(session.ID, "conn-b", model.Move{Row: 5, Col: 0})
	s.ErrorIs(err, model.ErrOutOfBounds)

	// Wrong turn
	_, err = s.registry.ApplyMove(session.ID, "conn-a", model.Move{Row: 1, Col: 1})
	s.ErrorIs(err, model.ErrNotYourTurn)

	after, err := s.registry.Get(session.ID)
	s.Require().NoError(err)
	s.Equal(before.Board, after.Board)
	s.Equal(before.Turn, after.Turn)
	s.Equal(before.MoveLog, after.MoveLog)
	s.Equal(before.LastActivityAt, after.LastActivityAt)
}

func (s *RegistrySuite) TestWinningMoveIsTerminal() {
	session := s.registry.Create(s.first, s.second)

	moves := []struct {
		conn model.ConnectionID
		move model.Move
	}{
		{"conn-a", model.Move{Row: 0, Col: 0}},
		{"conn-b", model.Move{Row: 1, Col: 1}},
		{"conn-a", model.Move{Row: 0, Col: 1}},
		{"conn-b", model.Move{Row: 2, Col: 2}},
	}
	for _, m := range moves {
		_, err := s.registry.ApplyMove(session.ID, m.conn, m.move)
		s.Require().NoError(err)
	}

	outcome, err := s.registry.ApplyMove(session.ID, "conn-a", model.Move{Row: 0, Col: 2})
	s.Require().NoError(err)
	s.True(outcome.Terminal)
	s.Equal(model.SeatFirst, outcome.Winner)
	s.False(outcome.Draw)
	s.Equal(model.TurnGameOver, outcome.NextTurn)

	// No further moves accepted
	_, err = s.registry.ApplyMove(session.ID, "conn-b", model.Move{Row: 2, Col: 0})
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *RegistrySuite) TestDrawIsTerminalWithoutWinner() {
	session := s.registry.Create(s.first, s.second)

	// X O X / O O X / X X O with no line, alternating legally
	moves := []struct {
		conn model.ConnectionID
		move model.Move
	}{
		{"conn-a", model.Move{Row: 0, Col: 0}}, // X
		{"conn-b", model.Move{Row: 0, Col: 1}}, // O
		{"conn-a", model.Move{Row: 0, Col: 2}}, // X
		{"conn-b", model.Move{Row: 1, Col: 0}}, // O
		{"conn-a", model.Move{Row: 1, Col: 2}}, // X
		{"conn-b", model.Move{Row: 1, Col: 1}}, // O
		{"conn-a", model.Move{Row: 2, Col: 0}}, // X
		{"conn-b", model.Move{Row: 2, Col: 2}}, // O
	}
	for _, m := range moves {
		outcome, err := s.registry.ApplyMove(session.ID, m.conn, m.move)
		s.Require().NoError(err)
		s.Require().False(outcome.Terminal)
	}

	outcome, err := s.registry.ApplyMove(session.ID, "conn-a", model.Move{Row: 2, Col: 1})
	s.Require().NoError(err)
	s.True(outcome.Terminal)
	s.True(outcome.Draw)
	s.Equal(model.SeatNone, outcome.Winner)
}

func (s *RegistrySuite) TestMoveRefreshesActivity() {
	session := s.registry.Create(s.first, s.second)
	created := s.clock.Now()

	s.clock.Advance(time.Minute)
	outcome, err := s.registry.ApplyMove(session.ID, "conn-a", model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Equal(created.Add(time.Minute), outcome.Session.LastActivityAt)
}

func (s *RegistrySuite) TestDestroyIsIdempotent() {
	session := s.registry.Create(s.first, s.second)

	s.registry.Destroy(session.ID)
	s.Equal(0, s.registry.Len())
	s.registry.Destroy(session.ID)

	_, err := s.registry.Get(session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RegistrySuite) TestFindByConnection() {
	session := s.registry.Create(s.first, s.second)

	found, ok := s.registry.FindByConnection("conn-b")
	s.Require().True(ok)
	s.Equal(session.ID, found.ID)

	_, ok = s.registry.FindByConnection("conn-z")
	s.False(ok)
}

func (s *RegistrySuite) TestSnapshotsDoNotAliasRegistryState() {
	session := s.registry.Create(s.first, s.second)
	session.Board[0][0] = model.MarkX

	stored, err := s.registry.Get(session.ID)
	s.Require().NoError(err)
	s.Equal(model.MarkEmpty, stored.Board.Get(0, 0))
}

// TestConcurrentMovesAreSerialized fires racing moves for both seats; every
// accepted move must have seen the previous one's effect, so the move log
// alternates strictly and its length matches the number of accepted moves.
func (s *RegistrySuite) TestConcurrentMovesAreSerialized() {
	session := s.registry.Create(s.first, s.second)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for _, conn := range []model.ConnectionID{"conn-a", "conn-b"} {
				wg.Add(1)
				go func(conn model.ConnectionID, row, col int) {
					defer wg.Done()
					// Rejections are expected; only consistency matters
					_, _ = s.registry.ApplyMove(session.ID, conn, model.Move{Row: row, Col: col})
				}(conn, i, j)
			}
		}
	}
	wg.Wait()

	final, err := s.registry.Get(session.ID)
	s.Require().NoError(err)
	for i := 1; i < len(final.MoveLog); i++ {
		s.NotEqual(final.MoveLog[i-1].Seat, final.MoveLog[i].Seat,
			"same seat moved twice in a row at log index %d", i)
	}

	marks := 0
	for _, row := range final.Board {
		for _, cell := range row {
			if cell != model.MarkEmpty {
				marks++
			}
		}
	}
	s.Equal(len(final.MoveLog), marks)
}

// Second sessions are fully independent of the first
func (s *RegistrySuite) TestSessionsAreIsolated() {
	one := s.registry.Create(s.first, s.second)
	two := s.registry.Create(
		model.Player{Username: "carol", ConnectionID: "conn-c"},
		model.Player{Username: "dave", ConnectionID: "conn-d"},
	)

	_, err := s.registry.ApplyMove(one.ID, "conn-a", model.Move{Row: 0, Col: 0})
	s.Require().NoError(err)

	other, err := s.registry.Get(two.ID)
	s.Require().NoError(err)
	s.Equal(model.MarkEmpty, other.Board.Get(0, 0))
	s.Equal(model.TurnFirstPlayer, other.Turn)
}
