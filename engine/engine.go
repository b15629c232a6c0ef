package engine

import (
	"othello/experiments/metrics"
	"othello/game"
)

type Engine interface {
	// Run plays a game till it is over or the move limit is reached and returns the winner
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
	// State returns the current position
	State() *game.GameState
}
