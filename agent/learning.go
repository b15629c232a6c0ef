package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/learner"
)

type learningAgent struct {
	learner *learner.Learner
	online  bool
}

// NewLearningAgent plays from the learner's value table. An online agent
// explores and updates the table on every move; otherwise it plays greedily
// and leaves the table untouched.
func NewLearningAgent(l *learner.Learner, online bool) Agent {
	return learningAgent{learner: l, online: online}
}

func (a learningAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	if !a.online {
		move, err := a.learner.Greedy(state.Board, state.Turn)
		return move, metrics.SearchMetric{}, err
	}
	step, err := a.learner.Learn(state.Board, state.Turn)
	if err != nil {
		return game.Square{}, metrics.SearchMetric{}, err
	}
	return step.Move, metrics.SearchMetric{Episodes: 1}, nil
}
