package agent

import (
	"othello/experiments/metrics"
	"othello/game"
)

type Agent interface {
	// FindMove returns a move for the side to move and performance metrics (if collected)
	FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error)
}
