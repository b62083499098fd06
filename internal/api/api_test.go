package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duelgrid/duelgrid/internal/api"
	"github.com/duelgrid/duelgrid/internal/api/response"
	"github.com/duelgrid/duelgrid/internal/factory"
	"github.com/duelgrid/duelgrid/internal/model"
)

// testServer wraps the wired application behind the real router
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		ArenaController: app.ArenaController,
		Storage:         app.Storage,
		Hub:             app.Hub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) join(t *testing.T, conn, username string, skill int, region string) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(http.MethodPost, "/api/v1/queue/join", map[string]any{
		"username":      username,
		"skill_level":   skill,
		"region":        region,
		"connection_id": conn,
	})
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestJoinQueue(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.join(t, "c1", "alice", 5, "us")
	require.Equal(t, http.StatusAccepted, rr.Code)

	var resp response.QueueJoinedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Queued)
	assert.Equal(t, "c1", resp.ConnectionID)
}

func TestJoinQueueValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.join(t, "c1", "", 5, "us")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Leaving skill_level out entirely is a validation failure, not skill 0
	rr = ts.request(http.MethodPost, "/api/v1/queue/join", map[string]any{
		"username":      "alice",
		"region":        "us",
		"connection_id": "c1",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/queue/join", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestJoinQueueDuplicateConnection(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.join(t, "c1", "alice", 5, "us")
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = ts.join(t, "c1", "alice", 5, "us")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLeaveQueue(t *testing.T) {
	ts := newTestServer(t)

	ts.join(t, "c1", "alice", 5, "us")

	rr := ts.request(http.MethodPost, "/api/v1/queue/leave", map[string]any{"connection_id": "c1"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/queue/leave", map[string]any{"connection_id": "c1"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// matchPair joins two compatible players and returns the resulting session id
func (ts *testServer) matchPair(t *testing.T) model.SessionID {
	t.Helper()
	require.Equal(t, http.StatusAccepted, ts.join(t, "c1", "alice", 5, "us").Code)
	require.Equal(t, http.StatusAccepted, ts.join(t, "c2", "bob", 6, "us").Code)

	sess, ok := ts.app.Registry.FindByConnection("c1")
	require.True(t, ok)
	return sess.ID
}

func TestGetSession(t *testing.T) {
	ts := newTestServer(t)
	id := ts.matchPair(t)

	rr := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s", id), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, string(id), resp.ID)
	assert.Equal(t, "first_player", resp.Turn)
	assert.Equal(t, "alice", resp.Players[0].Username)
	assert.Equal(t, "bob", resp.Players[1].Username)
	require.Len(t, resp.Board, 3)
	assert.Equal(t, []string{"-", "-", "-"}, resp.Board[0])
}

func TestGetSessionNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func (ts *testServer) move(t *testing.T, id model.SessionID, conn string, row, col int) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/moves", id), map[string]any{
		"connection_id": conn,
		"row":           row,
		"col":           col,
	})
}

func TestSubmitMove(t *testing.T) {
	ts := newTestServer(t)
	id := ts.matchPair(t)

	rr := ts.move(t, id, "c1", 0, 0)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Terminal)
	assert.Equal(t, "second_player", resp.Session.Turn)
	assert.Equal(t, "X", resp.Session.Board[0][0])
}

func TestSubmitMoveErrors(t *testing.T) {
	ts := newTestServer(t)
	id := ts.matchPair(t)

	// Out of turn
	rr := ts.move(t, id, "c2", 0, 0)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Outsider connection
	rr = ts.move(t, id, "c9", 0, 0)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Out of bounds
	rr = ts.move(t, id, "c1", 3, 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Occupied cell
	require.Equal(t, http.StatusOK, ts.move(t, id, "c1", 0, 0).Code)
	rr = ts.move(t, id, "c2", 0, 0)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestFullGameOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	id := ts.matchPair(t)

	moves := []struct {
		conn     string
		row, col int
	}{
		{"c1", 0, 0}, {"c2", 1, 1}, {"c1", 0, 1}, {"c2", 2, 2},
	}
	for _, m := range moves {
		require.Equal(t, http.StatusOK, ts.move(t, id, m.conn, m.row, m.col).Code)
	}

	rr := ts.move(t, id, "c1", 0, 2)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.MoveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Terminal)
	assert.Equal(t, "alice", resp.Winner)

	// Session is gone after completion
	rr = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s", id), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Stats are queryable over HTTP
	rr = ts.request(http.MethodGet, "/api/v1/stats/alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Wins)

	// So is history
	rr = ts.request(http.MethodGet, "/api/v1/history/alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var history response.HistoryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &history))
	require.Len(t, history.Matches, 1)
	assert.Equal(t, "alice", history.Matches[0].Winner)
	assert.Equal(t, "win", history.Matches[0].Result)
}

func TestStatsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/stats/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHistoryLimitValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/history/alice?limit=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/history/alice?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDisconnectEndpoint(t *testing.T) {
	ts := newTestServer(t)
	id := ts.matchPair(t)

	rr := ts.request(http.MethodPost, "/api/v1/connections/disconnect", map[string]any{"connection_id": "c1"})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s", id), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
