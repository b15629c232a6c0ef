package engine

import (
	"errors"
	"fmt"
	"othello/agent"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var (
	gamesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "othello_engine_games_total",
		Help: "Games finished by the local engine, by winner.",
	}, []string{"winner"})
	movesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "othello_engine_moves_total",
		Help: "Moves played by the local engine.",
	})
	passesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "othello_engine_passes_total",
		Help: "Forced passes observed by the local engine.",
	})
)

type local struct {
	state    *game.GameState
	agents   map[game.Cell]agent.Agent
	maxMoves int
}

// LocalEngine pits two agents against each other in-process, starting from state.
func LocalEngine(state *game.GameState, black, white agent.Agent) Engine {
	if black == nil || white == nil {
		panic("need an agent for both sides")
	}
	return &local{
		state:    state,
		agents:   map[game.Cell]agent.Agent{game.Black: black, game.White: white},
		maxMoves: meta.MAX_TURNS,
	}
}

func (e *local) State() *game.GameState {
	return e.state
}

func (e *local) Run() (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.state.Player())

	for step := 1; !e.state.Over && step <= e.maxMoves; step++ {
		mover := e.state.Turn

		move, searchMetric, err := e.agents[mover].FindMove(e.state)
		if err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("%s failed to find a move: %w", mover, err)
		}

		reward, err := e.state.Place(move)
		if errors.Is(err, game.ErrIllegalMove) || errors.Is(err, game.ErrOutOfRange) {
			fallback := e.state.LegalMoves()[0]
			log.Warn().Err(err).Msgf("%s returned an invalid move %s, playing %s instead", mover, move, fallback)
			move = fallback
			reward, err = e.state.Place(move)
		}
		if err != nil {
			return "", gameMetric, moveMetrics, err
		}
		movesTotal.Inc()

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       mover.String(),
			Move:         move.String(),
			Reward:       reward,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("move %d: %s played %s for %d", step, mover, move, reward)

		if e.state.Passed(mover) {
			gameMetric.Passes++
			passesTotal.Inc()
			log.Debug().Msgf("%s has no legal move and passes", mover.Opponent())
		}
	}

	winner := e.state.Winner()
	outcome := e.state.Outcome()
	gameMetric.Winner = winner
	gameMetric.Black = outcome.Black
	gameMetric.White = outcome.White
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if winner != "" {
		gamesTotal.WithLabelValues(winner).Inc()
		log.Info().Msgf("game over: %s", outcome)
	} else {
		gamesTotal.WithLabelValues("unfinished").Inc()
		log.Info().Msgf("stopped after %d moves (no winner yet)", e.maxMoves)
	}

	return winner, gameMetric, moveMetrics, nil
}
