package learner

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"othello/game"
)

// ErrNoLegalMoves signals that the learner was asked to act in a position
// where its side cannot move. Control goes back to the turn controller.
var ErrNoLegalMoves = errors.New("no legal moves")

var (
	updatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "othello_learner_updates_total",
		Help: "Temporal-difference updates applied to the value table",
	})
	explorationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "othello_learner_explorations_total",
		Help: "Moves chosen at random by the epsilon-greedy policy",
	})
	tableEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "othello_learner_table_entries",
		Help: "Entries in the most recently updated value table",
	})
)

// Config holds the learning hyperparameters.
type Config struct {
	Epsilon float64 // Probability of a uniformly random move
	Alpha   float64 // Learning rate
	Gamma   float64 // Discount of the bootstrapped next value
}

// ReplyPolicy picks the move of the side the learner plays against when it
// simulates forward. moves is never empty.
type ReplyPolicy func(board game.Board, side game.Cell, moves []game.Square) game.Square

type Option func(l *Learner)

func WithRand(rng *rand.Rand) Option {
	return func(l *Learner) {
		if rng != nil {
			l.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(l *Learner) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRewards(rewards game.RewardPolicy) Option {
	return func(l *Learner) {
		l.rewards = rewards
	}
}

func WithReplyPolicy(reply ReplyPolicy) Option {
	return func(l *Learner) {
		if reply != nil {
			l.reply = reply
		}
	}
}

// Learner is the learning opponent: it picks moves epsilon-greedily over its
// value table and updates the table with a one-step bootstrapped return.
type Learner struct {
	table   *Table
	config  Config
	rng     *rand.Rand
	rewards game.RewardPolicy
	reply   ReplyPolicy
}

func New(table *Table, config Config, options ...Option) *Learner {
	l := &Learner{ // Default values
		table:   table,
		config:  config,
		rng:     rand.New(rand.NewSource(1)),
		rewards: game.DefaultRewards(),
	}
	l.reply = l.randomReply
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *Learner) Table() *Table {
	return l.table
}

func (l *Learner) Config() Config {
	return l.config
}

func (l *Learner) randomReply(_ game.Board, _ game.Cell, moves []game.Square) game.Square {
	return moves[l.rng.Intn(len(moves))]
}

// SelectMove picks a move for side on board: uniformly at random with
// probability epsilon, otherwise the highest valued move.
func (l *Learner) SelectMove(board game.Board, side game.Cell) (game.Square, error) {
	moves := board.LegalMoves(side)
	if len(moves) == 0 {
		return game.Square{}, ErrNoLegalMoves
	}
	return l.choose(board, moves), nil
}

// Greedy picks the highest valued move without exploring.
func (l *Learner) Greedy(board game.Board, side game.Cell) (game.Square, error) {
	moves := board.LegalMoves(side)
	if len(moves) == 0 {
		return game.Square{}, ErrNoLegalMoves
	}
	move, _ := l.table.Best(board, moves)
	return move, nil
}

func (l *Learner) choose(board game.Board, moves []game.Square) game.Square {
	if l.rng.Float64() < l.config.Epsilon {
		explorationsTotal.Inc()
		return moves[l.rng.Intn(len(moves))]
	}
	move, _ := l.table.Best(board, moves)
	return move
}

// Step records one learning transition.
type Step struct {
	Move     game.Square // Move chosen on the original board
	Reward   int         // Positional reward of the move
	Next     game.Board  // Board where the learner next has a choice, or the final board
	Terminal bool        // Neither side can move on Next
	Target   float64     // r + gamma * max Q(Next, a')
	Value    float64     // Updated Q(board, Move)
}

// Learn chooses a move for side on board, simulates it on a scratch copy
// together with the opponent's reply and any forced passes, and applies
//
//	Q(s,a) += alpha * (r + gamma * max_a' Q(s',a') - Q(s,a))
//
// The caller's board is never modified; committing the move is up to the
// caller.
func (l *Learner) Learn(board game.Board, side game.Cell) (Step, error) {
	moves := board.LegalMoves(side)
	if len(moves) == 0 {
		return Step{}, ErrNoLegalMoves
	}
	move := l.choose(board, moves)

	scratch := board
	reward, err := scratch.Apply(side, move, l.rewards)
	if err != nil {
		return Step{}, err
	}
	next, terminal := l.simulateReply(scratch, side)

	target := float64(reward)
	if !terminal {
		_, best := l.table.Best(next, next.LegalMoves(side))
		target += l.config.Gamma * best
	}

	old := l.table.Value(board, move)
	updated := old + l.config.Alpha*(target-old)
	l.table.Set(board, move, updated)

	updatesTotal.Inc()
	tableEntries.Set(float64(l.table.Len()))
	log.Debug().
		Str("side", side.String()).
		Stringer("move", move).
		Int("reward", reward).
		Float64("target", target).
		Float64("value", updated).
		Bool("terminal", terminal).
		Msg("learner update")

	return Step{
		Move:     move,
		Reward:   reward,
		Next:     next,
		Terminal: terminal,
		Target:   target,
		Value:    updated,
	}, nil
}

// simulateReply lets the opponent of side move on board until side has a
// legal move again. It reports terminal when neither side can move.
func (l *Learner) simulateReply(board game.Board, side game.Cell) (game.Board, bool) {
	opponent := side.Opponent()
	for {
		if moves := board.LegalMoves(opponent); len(moves) > 0 {
			reply := l.reply(board, opponent, moves)
			if _, err := board.Apply(opponent, reply, l.rewards); err != nil {
				panic(err)
			}
		}
		if board.HasLegalMove(side) {
			return board, false
		}
		if !board.HasLegalMove(opponent) {
			return board, true
		}
	}
}

// Result summarizes a training run from the learner's point of view.
type Result struct {
	Episodes int
	Wins     int
	Losses   int
	Ties     int
}

// Train plays episodes from start with the learner on side and the reply
// policy on the other side, learning from every learner move.
func (l *Learner) Train(start *game.GameState, side game.Cell, episodes int) (Result, error) {
	result := Result{}
	for i := 0; i < episodes; i++ {
		gs := start.Copy()
		for !gs.Over {
			var move game.Square
			if gs.Turn == side {
				step, err := l.Learn(gs.Board, side)
				if err != nil {
					return result, err
				}
				move = step.Move
			} else {
				move = l.reply(gs.Board, gs.Turn, gs.LegalMoves())
			}
			if _, err := gs.Place(move); err != nil {
				return result, err
			}
		}

		result.Episodes++
		switch gs.Outcome().Winner {
		case side:
			result.Wins++
		case game.Empty:
			result.Ties++
		default:
			result.Losses++
		}
		if (i+1)%100 == 0 {
			log.Info().Msgf("trained %d of %d episodes: %d wins, %d losses, %d ties, %d table entries",
				i+1, episodes, result.Wins, result.Losses, result.Ties, l.table.Len())
		}
	}
	return result, nil
}
