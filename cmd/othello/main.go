package main

import (
	"fmt"
	"os"
	"othello/config"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var path string
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "othello",
		Short:         "Othello rule engine with a learning opponent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
			setupLogging(cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&path, "config", "c", "", "path to a YAML config file")

	root.AddCommand(
		newPlayCmd(&cfg),
		newTrainCmd(&cfg),
		newExperimentCmd(&cfg),
		newServeCmd(&cfg),
	)
	return root
}

func setupLogging(cfg config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel())
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
