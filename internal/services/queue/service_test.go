package queue

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/duelgrid/duelgrid/internal/dependencies/mocks"
	"github.com/duelgrid/duelgrid/internal/model"
	"github.com/duelgrid/duelgrid/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(SkillRegionPredicate(DefaultSkillTolerance), s.clock, testutil.NopLogger())
}

func player(conn string, skill int, region string) model.Player {
	return model.Player{
		Username:     "user-" + conn,
		SkillLevel:   skill,
		Region:       region,
		ConnectionID: model.ConnectionID(conn),
	}
}

func (s *ServiceSuite) TestEnqueueSucceeds() {
	err := s.service.Enqueue(player("c1", 5, "us"))
	s.Require().NoError(err)
	s.Equal(1, s.service.Len())
	s.True(s.service.Contains("c1"))
}

func (s *ServiceSuite) TestEnqueueRejectsDuplicateConnection() {
	s.Require().NoError(s.service.Enqueue(player("c1", 5, "us")))

	err := s.service.Enqueue(player("c1", 7, "eu"))
	s.ErrorIs(err, model.ErrDuplicateConnection)
	s.Equal(1, s.service.Len())
}

func (s *ServiceSuite) TestTryMatchEmptyQueue() {
	_, _, ok := s.service.TryMatch()
	s.False(ok)
}

func (s *ServiceSuite) TestTryMatchPairsCompatiblePlayers() {
	s.Require().NoError(s.service.Enqueue(player("c1", 5, "us")))
	s.Require().NoError(s.service.Enqueue(player("c2", 6, "us")))

	first, second, ok := s.service.TryMatch()
	s.Require().True(ok)
	s.Equal(model.ConnectionID("c1"), first.ConnectionID)
	s.Equal(model.ConnectionID("c2"), second.ConnectionID)
	s.Equal(0, s.service.Len())
}

func (s *ServiceSuite) TestTryMatchRespectsSkillTolerance() {
	s.Require().NoError(s.service.Enqueue(player("c1", 5, "us")))
	s.Require().NoError(s.service.Enqueue(player("c2", 9, "us")))

	_, _, ok := s.service.TryMatch()
	s.False(ok)
	s.Equal(2, s.service.Len())
}

func (s *ServiceSuite) TestTryMatchEarliestCompatiblePairWins() {
	// 5 and 9 are incompatible; 5 and 6 pair up even though 9 arrived earlier
	s.Require().NoError(s.service.Enqueue(player("c1", 5, "us")))
	s.Require().NoError(s.service.Enqueue(player("c2", 9, "us")))
	s.Require().NoError(s.service.Enqueue(player("c3", 6, "us")))

	first, second, ok := s.service.TryMatch()
	s.Require().True(ok)
	s.Equal(model.ConnectionID("c1"), first.ConnectionID)
	s.Equal(model.ConnectionID("c3"), second.ConnectionID)

	// 9 is left waiting, not lost
	s.True(s.service.Contains("c2"))
	s.Equal(1, s.service.Len())
}

func (s *ServiceSuite) TestTryMatchSkipsIncompatibleEarlyArrival() {
	// A later, more compatible pair forms before the stranded early arrival
	s.Require().NoError(s.service.Enqueue(player("c1", 1, "us")))
	s.Require().NoError(s.service.Enqueue(player("c2", 8, "us")))
	s.Require().NoError(s.service.Enqueue(player("c3", 9, "us")))

	first, second, ok := s.service.TryMatch()
	s.Require().True(ok)
	s.Equal(model.ConnectionID("c2"), first.ConnectionID)
	s.Equal(model.ConnectionID("c3"), second.ConnectionID)
}

func (s *ServiceSuite) TestTryMatchRegionIsolation() {
	s.Require().NoError(s.service.Enqueue(player("c1", 5, "us")))
	s.Require().NoError(s.service.Enqueue(player("c2", 5, "eu")))

	_, _, ok := s.service.TryMatch()
	s.False(ok)
}

func (s *ServiceSuite) TestRemoveByConnection() {
	s.Require().NoError(s.service.Enqueue(player("c1", 5, "us")))

	s.True(s.service.RemoveByConnection("c1"))
	s.Equal(0, s.service.Len())

	// Idempotent
	s.False(s.service.RemoveByConnection("c1"))
}

func (s *ServiceSuite) TestUsernameMayAppearTwiceUnderDifferentConnections() {
	a := player("c1", 5, "us")
	b := player("c2", 5, "us")
	b.Username = a.Username

	s.Require().NoError(s.service.Enqueue(a))
	s.Require().NoError(s.service.Enqueue(b))
	s.Equal(2, s.service.Len())
}

// TestConcurrentMatchingExclusivity drives concurrent enqueues and pairing
// attempts and asserts that every connection ends up in exactly one place:
// matched into exactly one pair, or still in the queue.
func (s *ServiceSuite) TestConcurrentMatchingExclusivity() {
	const players = 40

	var wg sync.WaitGroup
	var matchedMu sync.Mutex
	matched := make(map[model.ConnectionID]int)

	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			conn := fmt.Sprintf("conn-%d", n)
			s.NoError(s.service.Enqueue(player(conn, 5, "us")))

			if first, second, ok := s.service.TryMatch(); ok {
				matchedMu.Lock()
				matched[first.ConnectionID]++
				matched[second.ConnectionID]++
				matchedMu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	for conn, count := range matched {
		s.Equal(1, count, "connection %s matched more than once", conn)
		s.False(s.service.Contains(conn), "matched connection %s still queued", conn)
	}
	s.Equal(players, len(matched)+s.service.Len(), "players were lost")
}
