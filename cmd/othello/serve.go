package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"othello/agent"
	"othello/config"
	"othello/server"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			gin.SetMode(gin.ReleaseMode)

			opponent, err := newOpponent(*cfg, newLearner(*cfg))
			if err != nil {
				return err
			}
			if opponent != nil {
				opponent = agent.Synchronized(opponent)
			}
			srv := server.New(sessionFactory(*cfg, opponent), opponent)
			httpServer := &http.Server{
				Addr:    cfg.Server.Addr,
				Handler: srv.Router(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Msgf("listening on %s", cfg.Server.Addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				log.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}
}
