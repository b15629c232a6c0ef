package engine

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"othello/agent"
	"othello/experiments/metrics"
	"othello/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	move game.Square
	err  error
}

func (a fixedAgent) FindMove(*game.GameState) (game.Square, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, a.err
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("random agents finish a game", func(t *testing.T) {
		e := LocalEngine(game.NewGameState(game.DefaultRewards()), agent.NewRandomAgent(1), agent.NewRandomAgent(2))

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.True(t, e.State().Over, "Game should be played to the end")
		require.Contains(t, []string{"Black", "White", game.Tie}, winner)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, "Black", gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, e.State().Moves, gameMetric.TotalMoves)
		require.LessOrEqual(t, gameMetric.Black+gameMetric.White, game.Size*game.Size)
		require.Equal(t, 4+gameMetric.TotalMoves, gameMetric.Black+gameMetric.White, "Every move adds exactly one disc")
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
		}
	})

	t.Run("invalid move falls back to a legal one", func(t *testing.T) {
		state := game.NewGameState(game.DefaultRewards())
		e := LocalEngine(state, fixedAgent{move: game.Square{Col: 1, Row: 1}}, agent.NewRandomAgent(2))
		e.(*local).maxMoves = 1

		winner, _, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Empty(t, winner, "Game should stop at the move limit")
		require.Len(t, moveMetrics, 1)
		require.Equal(t, game.Square{Col: 5, Row: 3}.String(), moveMetrics[0].Move, "First legal move should be played")
	})

	t.Run("agent errors abort the game", func(t *testing.T) {
		boom := errors.New("boom")
		e := LocalEngine(game.NewGameState(game.DefaultRewards()), fixedAgent{err: boom}, agent.NewRandomAgent(2))

		_, _, _, err := e.Run()

		require.ErrorIs(t, err, boom)
	})

	t.Run("forced passes are counted", func(t *testing.T) {
		// After Black takes (1,1) White cannot move but Black still can.
		board, err := game.ParseBoard([]string{
			".WB.....", "........", "........", "........",
			"........", "........", "........", "BBBBBWW.",
		})
		require.NoError(t, err)
		state := game.NewGameStateFrom(board, game.Black, game.DefaultRewards())
		e := LocalEngine(state, fixedAgent{move: game.Square{Col: 1, Row: 1}}, agent.NewRandomAgent(2))
		e.(*local).maxMoves = 1

		_, gameMetric, _, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, 1, gameMetric.Passes)
		require.Equal(t, game.Black, e.State().Turn)
	})
}

func TestRemoteAgent(t *testing.T) {
	t.Run("decodes the served move", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req MoveRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, game.Black, req.State.Turn)
			json.NewEncoder(w).Encode(MoveResponse{Move: req.State.LegalMoves()[0]})
		}))
		defer srv.Close()

		move, _, err := NewRemoteAgent(srv.URL, time.Second).FindMove(game.NewGameState(game.DefaultRewards()))

		require.NoError(t, err)
		require.Equal(t, game.Square{Col: 5, Row: 3}, move)
	})

	t.Run("surfaces server errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no legal moves", http.StatusConflict)
		}))
		defer srv.Close()

		_, _, err := NewRemoteAgent(srv.URL, time.Second).FindMove(game.NewGameState(game.DefaultRewards()))

		require.ErrorContains(t, err, "409")
	})
}
