package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMCTSSimulate(t *testing.T) {
	t.Run("policy covers the opening moves", func(t *testing.T) {
		state := game.NewGameState(game.DefaultRewards())
		mcts := NewMCTS(4, WithEpisodes(200), WithCutoff(10), WithMetrics())

		policy, metric := mcts.Simulate(state, nil)

		require.Len(t, policy, 4, "All four opening moves should be explored")
		total := 0.0
		for move, visits := range policy {
			require.True(t, state.Board.IsLegal(game.Black, move), "Explored move %s should be legal", move)
			total += visits
		}
		require.Equal(t, 200.0, total, "Every episode should pass through a root child")
		require.Equal(t, 200, metric.Episodes)
		require.True(t, metric.IsTreeReset, "First search should start a new tree")
	})

	t.Run("picks among legal endgame moves", func(t *testing.T) {
		board, err := game.ParseBoard([]string{
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
			"WWWWWWWW",
			".WWWWWW.",
		})
		require.NoError(t, err)
		state := game.NewGameStateFrom(board, game.Black, game.DefaultRewards())
		mcts := NewMCTS(2, WithEpisodes(300))

		policy, _ := mcts.Simulate(state, nil)

		require.NotEmpty(t, policy)
		for move := range policy {
			require.True(t, state.Board.IsLegal(game.Black, move))
		}
	})

	t.Run("reuses subtree along lineage", func(t *testing.T) {
		state := game.NewGameState(game.DefaultRewards())
		mcts := NewMCTS(1, WithEpisodes(100), WithMetrics())
		policy, _ := mcts.Simulate(state, nil)

		var move game.Square
		for m := range policy {
			move = m
			break
		}
		next := state.Play(move)
		_, metric := mcts.Simulate(next, []Segment{{Move: move, StateHash: next.Hash()}})
		require.False(t, metric.IsTreeReset, "Search should continue from the explored child")

		_, metric = mcts.Simulate(next, []Segment{{Move: move, StateHash: 42}})
		require.True(t, metric.IsTreeReset, "Mismatched hash should reset the tree")
	})

	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(1) })
	})
}

func TestRollout(t *testing.T) {
	t.Run("terminal state returns winner", func(t *testing.T) {
		board, err := game.ParseBoard([]string{
			"BBBBBBBB", "BBBBBBBB", "BBBBBBBB", "BBBBBBBB",
			"BBBBBBBB", "BBBBBBBB", "BBBBBBBB", "WWWWWWWW",
		})
		require.NoError(t, err)
		state := game.NewGameStateFrom(board, game.Black, game.DefaultRewards())

		player, score := rollout(state, MaxCutoff, game.EvaluateDiscs, metrics.NewDummyCollector())

		require.Equal(t, "Black", player)
		require.Equal(t, WIN, score)
	})

	t.Run("cutoff returns evaluation of side to move", func(t *testing.T) {
		state := game.NewGameState(game.DefaultRewards())

		player, score := rollout(state, 0, game.EvaluateDiscs, metrics.NewDummyCollector())

		require.Equal(t, "Black", player)
		require.InDelta(t, game.EvaluateDiscs(state), score, 1e-9)
	})
}

func TestComputeReward(t *testing.T) {
	require.Equal(t, WIN, computeReward("Black", WIN, "Black"))
	require.Equal(t, LOSS, computeReward("White", WIN, "Black"))
	require.Equal(t, 0.0, computeReward("", 0, "Black"), "Ties are worth nothing")
	require.Equal(t, 0.0, computeReward("Black", WIN, ""), "The root has no mover")
}
