package experiments

import "othello/experiments/metrics"

// ThroughputExperiment pits equally configured MCTS agents with a growing
// number of goroutines against each other, for the same playing strength and
// similar game length, to measure episodes per move.
func ThroughputExperiment() Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: "mcts", Goroutines: 1, Duration: TimeBudget},
		{ID: 2, Kind: "mcts", Goroutines: 2, Duration: TimeBudget},
		{ID: 3, Kind: "mcts", Goroutines: 4, Duration: TimeBudget},
		{ID: 4, Kind: "mcts", Goroutines: 8, Duration: TimeBudget},
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{Name: "throughput", Configs: configs, MatchUps: matchUps}
}
