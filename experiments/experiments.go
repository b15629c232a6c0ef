package experiments

import (
	"fmt"
	"othello/agent"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/learner"
	"othello/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Experiment pairs agent configurations. The first agent of a matchup plays
// Black in odd games and White in even games.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
}

// Runner plays experiments and stores their records under Root.
type Runner struct {
	Root         string
	Games        int
	Seed         uint64
	Rewards      game.RewardPolicy
	Learner      learner.Config
	InitialValue float64 // Seeds unseen value table entries of learning agents

	learners map[int]*learner.Learner // Learning agents keep their table across games
}

// Tally counts wins per agent ID over an experiment; ties use ID -1.
type Tally map[int]int

// LearnerExperiment matches an online learner against a random baseline and
// against the MCTS searcher.
func LearnerExperiment(epsilon float64) Experiment {
	learnerConfig := metrics.AgentConfig{ID: 1, Kind: "learner", Epsilon: epsilon}
	random := metrics.AgentConfig{ID: 2, Kind: "random"}
	mcts := metrics.AgentConfig{ID: 3, Kind: "mcts", Goroutines: 4, Duration: TimeBudget, Cutoff: 20}
	return Experiment{
		Name:    "learner",
		Configs: []metrics.AgentConfig{learnerConfig, random, mcts},
		MatchUps: [][2]metrics.AgentConfig{
			{learnerConfig, random},
			{learnerConfig, mcts},
		},
	}
}

func (r *Runner) Run(exp Experiment) (Tally, error) {
	games := r.Games
	if games <= 0 {
		games = NumGames
	}
	r.learners = map[int]*learner.Learner{}

	count := 0
	tally := Tally{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			black, white := matchup[0], matchup[1]
			if i%2 == 1 {
				black, white = white, black
			}

			winner, gameMetric, moveMetrics, err := r.runGame(black, white, uint64(count))
			if err != nil {
				return tally, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			switch winner {
			case "Black":
				tally[black.ID]++
			case "White":
				tally[white.ID]++
			default:
				tally[-1]++
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Debug().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	return tally, r.store(exp, gameRecords, moveRecords)
}

func (r *Runner) store(exp Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(r.Root, exp.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return nil
}

// runGame executes a single game between two agents and returns the winner
func (r *Runner) runGame(black, white metrics.AgentConfig, index uint64) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	state := game.NewGameState(r.Rewards)
	e := engine.LocalEngine(state, r.createAgent(black, index*2), r.createAgent(white, index*2+1))
	return e.Run()
}

func (r *Runner) createAgent(config metrics.AgentConfig, offset uint64) agent.Agent {
	seed := r.Seed + offset
	switch config.Kind {
	case "learner":
		l, ok := r.learners[config.ID]
		if !ok {
			lc := r.Learner
			lc.Epsilon = config.Epsilon
			l = learner.New(learner.NewTable(r.InitialValue), lc, learner.WithSeed(r.Seed+uint64(config.ID)), learner.WithRewards(r.Rewards))
			r.learners[config.ID] = l
		}
		return agent.NewLearningAgent(l, true)
	case "mcts":
		return agent.NewEvaluationAgent(createMCTS(config))
	default:
		return agent.NewRandomAgent(seed)
	}
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
