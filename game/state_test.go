package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameStatePlace(t *testing.T) {
	t.Run("alternates turns after a normal move", func(t *testing.T) {
		gs := NewGameState(DefaultRewards())

		reward, err := gs.Place(Square{Col: 5, Row: 3})

		require.NoError(t, err)
		require.Equal(t, 2, reward)
		require.Equal(t, White, gs.Turn)
		require.Equal(t, 2, gs.Scores[Black], "reward accumulates for the mover")
		require.Equal(t, 1, gs.Moves)
		require.Equal(t, &Square{Col: 5, Row: 3}, gs.LastMove)
		require.False(t, gs.Over)
	})

	t.Run("illegal move is rejected without changes", func(t *testing.T) {
		gs := NewGameState(DefaultRewards())
		before := gs.Copy()

		_, err := gs.Place(Square{Col: 1, Row: 1})

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, before, gs)
	})

	t.Run("forced pass keeps the turn", func(t *testing.T) {
		b := mustBoard(t,
			".WB.....",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"BBBBBWW.",
		)
		gs := NewGameStateFrom(b, Black, DefaultRewards())

		_, err := gs.Place(Square{Col: 1, Row: 1})

		require.NoError(t, err)
		require.False(t, gs.Board.HasLegalMove(White), "White should be stuck")
		require.Equal(t, Black, gs.Turn, "turn should remain with Black")
		require.False(t, gs.Over, "Black can still move")
		require.True(t, gs.Passed(Black))
	})

	t.Run("game ends when both sides are stuck", func(t *testing.T) {
		b := mustBoard(t,
			"BBB.....",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"BBBBBWW.",
		)
		gs := NewGameStateFrom(b, Black, DefaultRewards())

		_, err := gs.Place(Square{Col: 8, Row: 8})

		require.NoError(t, err)
		require.True(t, gs.Over)
		require.Empty(t, gs.LegalMoves())
		require.Equal(t, Outcome{Black: 11, White: 0, Winner: Black}, gs.Outcome())
		require.Equal(t, "Black", gs.Winner())

		_, err = gs.Place(Square{Col: 4, Row: 1})
		require.ErrorIs(t, err, ErrGameOver, "no moves are accepted once over")
	})
}

func TestNewGameStateFrom(t *testing.T) {
	t.Run("stuck position is over with a tie", func(t *testing.T) {
		b := mustBoard(t,
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
			"WWWWWWWW",
			"WWWWWWWW",
			"WWWWWWWW",
			"WWWWWWWW",
		)

		gs := NewGameStateFrom(b, White, DefaultRewards())

		require.True(t, gs.Over)
		require.Equal(t, Empty, gs.Outcome().Winner)
		require.Equal(t, Tie, gs.Winner())
	})

	t.Run("stuck position reports the side with more discs", func(t *testing.T) {
		b := mustBoard(t,
			"WWWWWWWW",
			"WWWWWWWW",
			"WWWWWWWW",
			"WWWWWWWW",
			"WWWWWWWW",
			"BBBBBBBB",
			"BBBBBBBB",
			"BBBBBBBB",
		)

		gs := NewGameStateFrom(b, Black, DefaultRewards())

		require.True(t, gs.Over)
		require.Equal(t, Outcome{Black: 24, White: 40, Winner: White}, gs.Outcome())
		require.Equal(t, "White", gs.Winner())
	})

	t.Run("side without moves passes at the start", func(t *testing.T) {
		b := mustBoard(t,
			"BBB.....",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"BBBBBWW.",
		)

		gs := NewGameStateFrom(b, White, DefaultRewards())

		require.False(t, gs.Over)
		require.Equal(t, Black, gs.Turn)
	})
}

func TestGameStatePlay(t *testing.T) {
	t.Run("returns a new state", func(t *testing.T) {
		gs := NewGameState(DefaultRewards())
		before := gs.Copy()

		next := gs.Play(Square{Col: 6, Row: 4}).(*GameState)

		require.Equal(t, before, gs, "original state should not change")
		require.Equal(t, White, next.Turn)
		require.Equal(t, "White", next.Player())
		require.NotEqual(t, gs.Hash(), next.Hash())
	})

	t.Run("panics on illegal move", func(t *testing.T) {
		gs := NewGameState(DefaultRewards())
		require.Panics(t, func() {
			gs.Play(Square{Col: 1, Row: 1})
		})
	})

	t.Run("winner is empty while playing", func(t *testing.T) {
		gs := NewGameState(DefaultRewards())
		require.Equal(t, "", gs.Winner())
	})
}

func TestEvaluateDiscs(t *testing.T) {
	t.Run("balanced opening", func(t *testing.T) {
		gs := NewGameState(DefaultRewards())
		require.InDelta(t, 0.0, EvaluateDiscs(gs), 0.0001)
	})

	t.Run("stays within bounds", func(t *testing.T) {
		b := mustBoard(t,
			"BBB.....",
			"........",
			"........",
			"........",
			"........",
			"........",
			"........",
			"BBBBBWW.",
		)
		gs := NewGameStateFrom(b, Black, DefaultRewards())

		score := EvaluateDiscs(gs)

		require.Greater(t, score, 0.0, "Black is far ahead")
		require.LessOrEqual(t, score, 1.0)
	})
}
