package main

import (
	"fmt"
	"othello/agent"
	"othello/config"
	"othello/game"
	"othello/learner"
	"othello/searcher"
	"othello/session"
)

func newLearner(cfg config.Config) *learner.Learner {
	return learner.New(
		learner.NewTable(cfg.Learner.InitialValue),
		learner.Config{
			Epsilon: cfg.Learner.Epsilon,
			Alpha:   cfg.Learner.Alpha,
			Gamma:   cfg.Learner.Gamma,
		},
		learner.WithSeed(cfg.Learner.Seed),
		learner.WithRewards(cfg.Rewards),
	)
}

func newMCTS(cfg config.Config) *searcher.MCTS {
	return searcher.NewMCTS(cfg.Search.Goroutines,
		searcher.WithEpisodes(cfg.Search.Episodes),
		searcher.WithDuration(cfg.Search.Duration),
		searcher.WithCutoff(cfg.Search.Cutoff),
	)
}

// newOpponent builds the configured automated opponent; nil means none.
func newOpponent(cfg config.Config, l *learner.Learner) (agent.Agent, error) {
	switch cfg.Session.Opponent {
	case "learner":
		return agent.NewLearningAgent(l, true), nil
	case "mcts":
		return agent.NewEvaluationAgent(newMCTS(cfg)), nil
	case "random":
		return agent.NewRandomAgent(cfg.Learner.Seed), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown opponent %q", cfg.Session.Opponent)
}

func newState(cfg config.Config) (*game.GameState, error) {
	board, err := cfg.OpeningBoard()
	if err != nil {
		return nil, err
	}
	return game.NewGameStateFrom(board, game.Black, cfg.Rewards), nil
}

// sessionFactory returns a constructor for sessions sharing one opponent.
func sessionFactory(cfg config.Config, opponent agent.Agent) func() *session.Session {
	return func() *session.Session {
		state, err := newState(cfg)
		if err != nil { // Validated at load time
			panic(err)
		}
		options := []session.Option{
			session.WithHumanSide(cfg.HumanCell()),
			session.WithDelay(cfg.Session.OpponentDelay),
			session.WithDiagonal(cfg.Session.DiagonalSupport),
		}
		if opponent != nil {
			options = append(options, session.WithOpponent(opponent))
		}
		return session.New(state, options...)
	}
}
