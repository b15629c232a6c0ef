package agent

import (
	"math"
	"othello/experiments/metrics"
	"othello/game"
	"othello/learner"
	"othello/searcher"
	"slices"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. Moves
// are sampled from the visit counts raised to 1/temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	if len(state.LegalMoves()) == 0 {
		return game.Square{}, metrics.SearchMetric{}, learner.ErrNoLegalMoves
	}
	policy, metric := a.mcts.Simulate(state, nil)
	policy = adjustTemperature(policy, a.temperature)
	return sample(policy, a.rng.Float64()), metric, nil
}

func adjustTemperature(policy map[game.Square]float64, temperature float64) map[game.Square]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Square]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the cumulative distribution in row-major order and returns
// the move whose bucket contains sampled, a number in [0, 1).
func sample(policy map[game.Square]float64, sampled float64) game.Square {
	cumulative := 0.0
	var lastMove game.Square
	for _, move := range sortedMoves(policy) {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}

func sortedMoves(policy map[game.Square]float64) []game.Square {
	moves := make([]game.Square, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.SortFunc(moves, func(a, b game.Square) int {
		return a.Index() - b.Index()
	})
	return moves
}
