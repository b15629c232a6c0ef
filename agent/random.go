package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/learner"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Square{}, metrics.SearchMetric{}, learner.ErrNoLegalMoves
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
