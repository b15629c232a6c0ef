package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/learner"
	"othello/searcher"
)

type evaluationAgent struct {
	mcts    *searcher.MCTS
	lineage *lineage
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts, lineage: &lineage{}}
}

func (a evaluationAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	if len(state.LegalMoves()) == 0 {
		return game.Square{}, metrics.SearchMetric{}, learner.ErrNoLegalMoves
	}
	policy, metric := a.mcts.Simulate(state, a.lineage.since(state))
	move := findMax(policy)
	a.lineage.record(state, move)
	return move, metric, nil
}

// findMax returns the most visited move, the first in row-major order on ties.
func findMax(policy map[game.Square]float64) game.Square {
	var maxMove game.Square
	maxVisit := -1.0
	for _, move := range sortedMoves(policy) {
		if visit := policy[move]; visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}
