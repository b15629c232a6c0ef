package main

import (
	"fmt"
	"othello/config"
	"othello/experiments"
	"othello/learner"

	"github.com/spf13/cobra"
)

func newExperimentCmd(cfg *config.Config) *cobra.Command {
	var (
		name  string
		games int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run agent matchups and write game and move records as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			var exp experiments.Experiment
			switch name {
			case "learner":
				exp = experiments.LearnerExperiment(cfg.Learner.Epsilon)
			case "throughput":
				exp = experiments.ThroughputExperiment()
			default:
				return fmt.Errorf("unknown experiment %q", name)
			}

			r := &experiments.Runner{
				Root:    out,
				Games:   games,
				Seed:    cfg.Learner.Seed,
				Rewards: cfg.Rewards,
				Learner: learner.Config{
					Epsilon: cfg.Learner.Epsilon,
					Alpha:   cfg.Learner.Alpha,
					Gamma:   cfg.Learner.Gamma,
				},
				InitialValue: cfg.Learner.InitialValue,
			}
			tally, err := r.Run(exp)
			if err != nil {
				return err
			}
			for _, c := range exp.Configs {
				fmt.Fprintf(cmd.OutOrStdout(), "agent %d (%s): %d wins\n", c.ID, c.Kind, tally[c.ID])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ties: %d\n", tally[-1])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "learner", "experiment to run: learner or throughput")
	cmd.Flags().IntVar(&games, "games", experiments.NumGames, "games per matchup")
	cmd.Flags().StringVar(&out, "out", "experiments", "directory for the CSV records")
	return cmd
}
