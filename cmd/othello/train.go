package main

import (
	"fmt"
	"othello/config"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTrainCmd(cfg *config.Config) *cobra.Command {
	var episodes int
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the learning opponent against its reply policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := newLearner(*cfg)
			start, err := newState(*cfg)
			if err != nil {
				return err
			}
			side := cfg.HumanCell().Opponent()

			log.Info().Msgf("training %s for %d episodes", side, episodes)
			result, err := l.Train(start, side, episodes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "episodes %d: %d wins, %d losses, %d ties, %d table entries\n",
				result.Episodes, result.Wins, result.Losses, result.Ties, l.Table().Len())
			return nil
		},
	}
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 1000, "number of self-play episodes")
	return cmd
}
