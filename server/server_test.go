package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"othello/agent"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/session"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return New(func() *session.Session {
		return session.New(game.NewGameState(game.DefaultRewards()), session.WithOpponent(agent.NewRandomAgent(4)))
	}, agent.NewRandomAgent(5))
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router http.Handler) string {
	t.Helper()
	w := do(t, router, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ID       string           `json:"id"`
		Snapshot session.Snapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "Black", resp.Snapshot.Turn)
	return resp.ID
}

func TestSessionRoutes(t *testing.T) {
	t.Run("playing a move through inputs", func(t *testing.T) {
		router := newTestServer().Router()
		id := createSession(t, router)

		require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/sessions/"+id+"/input", gin.H{"right": true}).Code)
		require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/sessions/"+id+"/input", gin.H{"action": int(session.UP)}).Code)
		w := do(t, router, http.MethodPost, "/sessions/"+id+"/input", gin.H{"action": int(session.FIRE)})
		require.Equal(t, http.StatusOK, w.Code)

		var snap session.Snapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		require.Equal(t, 3, snap.Step)
		require.Equal(t, 2, snap.Score)
		require.Equal(t, "Black", snap.Turn, "Opponent should have replied")
	})

	t.Run("illegal placement is unprocessable", func(t *testing.T) {
		router := newTestServer().Router()
		id := createSession(t, router)

		w := do(t, router, http.MethodPost, "/sessions/"+id+"/input", gin.H{"button1": true})

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Contains(t, w.Body.String(), "illegal move")
	})

	t.Run("actions outside the legal set are rejected", func(t *testing.T) {
		router := newTestServer().Router()
		id := createSession(t, router)

		w := do(t, router, http.MethodPost, "/sessions/"+id+"/input", gin.H{"action": int(session.UPLEFT)})
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = do(t, router, http.MethodPost, "/sessions/"+id+"/input", gin.H{"action": 12})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("queries", func(t *testing.T) {
		router := newTestServer().Router()
		id := createSession(t, router)

		w := do(t, router, http.MethodGet, "/sessions/"+id+"/query/xyt", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "[4,4,0]", w.Body.String())

		w = do(t, router, http.MethodGet, "/sessions/"+id+"/query/lives", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "no such query")
	})

	t.Run("legal action set", func(t *testing.T) {
		router := newTestServer().Router()
		id := createSession(t, router)

		w := do(t, router, http.MethodGet, "/sessions/"+id+"/actions", nil)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"actions":[0,1,2,3,4,5]}`, w.Body.String())
	})

	t.Run("unknown and removed sessions", func(t *testing.T) {
		router := newTestServer().Router()
		require.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/sessions/nope", nil).Code)

		id := createSession(t, router)
		require.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/sessions/"+id, nil).Code)
		require.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/sessions/"+id, nil).Code)
	})
}

// gatedAgent blocks its first move until released.
type gatedAgent struct {
	started chan struct{}
	release chan struct{}
	inner   agent.Agent
}

func (g *gatedAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	close(g.started)
	<-g.release
	return g.inner.FindMove(state)
}

func TestSessionsRunIndependently(t *testing.T) {
	gate := &gatedAgent{started: make(chan struct{}), release: make(chan struct{}), inner: agent.NewRandomAgent(6)}
	opponents := []agent.Agent{gate, agent.NewRandomAgent(7)}
	created := 0
	router := New(func() *session.Session {
		opponent := opponents[created]
		created++
		return session.New(game.NewGameState(game.DefaultRewards()),
			session.WithHumanSide(game.White), session.WithOpponent(opponent))
	}, agent.NewRandomAgent(5)).Router()
	slow := createSession(t, router)
	fast := createSession(t, router)

	slowDone := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/sessions/"+slow+"/input", strings.NewReader(`{"right":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		slowDone <- w.Code
	}()
	<-gate.started

	codes := make(chan []int, 1)
	go func() {
		codes <- []int{
			do(t, router, http.MethodPost, "/sessions/"+fast+"/input", gin.H{"right": true}).Code,
			do(t, router, http.MethodGet, "/sessions/"+fast, nil).Code,
			do(t, router, http.MethodPost, "/agent/move", engine.MoveRequest{State: game.NewGameState(game.DefaultRewards())}).Code,
		}
	}()
	select {
	case got := <-codes:
		require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("a pending opponent move in one session blocked the others")
	}

	close(gate.release)
	require.Equal(t, http.StatusOK, <-slowDone)
}

func TestAgentMove(t *testing.T) {
	t.Run("serves a remote engine", func(t *testing.T) {
		srv := httptest.NewServer(newTestServer().Router())
		defer srv.Close()

		remote := engine.NewRemoteAgent(srv.URL+"/agent/move", time.Second)
		state := game.NewGameState(game.DefaultRewards())

		move, _, err := remote.FindMove(state)

		require.NoError(t, err)
		require.True(t, state.Board.IsLegal(game.Black, move))
	})

	t.Run("rejects missing state", func(t *testing.T) {
		w := do(t, newTestServer().Router(), http.MethodPost, "/agent/move", gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestServer().Router()
	createSession(t, router)

	w := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "othello_server_sessions_created_total"))
}
