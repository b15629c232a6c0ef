package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"sync"
)

type synchronizedAgent struct {
	mu    sync.Mutex
	agent Agent
}

// Synchronized serializes FindMove so one stateful agent, such as a learner
// updating its value table online, can serve several games at once.
func Synchronized(a Agent) Agent {
	if s, ok := a.(*synchronizedAgent); ok {
		return s
	}
	return &synchronizedAgent{agent: a}
}

func (s *synchronizedAgent) FindMove(state *game.GameState) (game.Square, metrics.SearchMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.agent.FindMove(state)
}
