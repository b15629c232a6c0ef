package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"othello/agent"
	"othello/game"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrNoSuchQuery = errors.New("no such query")
	ErrNotYourTurn = errors.New("not the human side's turn")
)

// Session is one game between a human driving a cursor and an optional
// automated opponent. It is not safe for concurrent use.
type Session struct {
	state    *game.GameState
	human    game.Cell
	opponent agent.Agent // nil when both sides are human
	delay    time.Duration
	diagonal bool
	cursor   game.Square
	step     int
}

type Option func(s *Session)

func WithOpponent(opponent agent.Agent) Option {
	return func(s *Session) {
		s.opponent = opponent
	}
}

func WithHumanSide(side game.Cell) Option {
	return func(s *Session) {
		if side == game.Black || side == game.White {
			s.human = side
		}
	}
}

// WithDelay makes the opponent wait before each move.
func WithDelay(delay time.Duration) Option {
	return func(s *Session) {
		if delay > 0 {
			s.delay = delay
		}
	}
}

func WithDiagonal(enabled bool) Option {
	return func(s *Session) {
		s.diagonal = enabled
	}
}

func New(state *game.GameState, options ...Option) *Session {
	s := &Session{
		state:  state,
		human:  game.Black,
		cursor: game.Square{Col: game.Size / 2, Row: game.Size / 2},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Session) State() *game.GameState {
	return s.state
}

func (s *Session) Diagonal() bool {
	return s.diagonal
}

// Update applies one frame of input. An empty input does nothing. Otherwise
// the step counter advances, a confirm places a disc at the cursor and the
// cursor moves within the board. After an accepted placement the opponent
// replies until the human is to move again or the game is over.
//
// A rejected placement leaves the position and cursor untouched and returns
// the game error.
func (s *Session) Update(ctx context.Context, in Input) error {
	if in.Empty() {
		return nil
	}
	s.step++

	if err := s.respond(ctx); err != nil {
		return err
	}

	if in.Button1 {
		if err := s.place(); err != nil {
			return err
		}
		if err := s.respond(ctx); err != nil {
			return err
		}
	}

	s.walk(in.delta())
	return nil
}

func (s *Session) place() error {
	if s.opponent != nil && s.state.Turn != s.human && !s.state.Over {
		return ErrNotYourTurn
	}
	mover := s.state.Turn
	reward, err := s.state.Place(s.cursor)
	if err != nil {
		log.Debug().Err(err).Msgf("rejected %s at %s", mover, s.cursor)
		return err
	}
	log.Debug().Msgf("%s placed at %s for %d", mover, s.cursor, reward)
	return nil
}

// respond lets the opponent move while it is its turn.
func (s *Session) respond(ctx context.Context) error {
	if s.opponent == nil {
		return nil
	}
	for !s.state.Over && s.state.Turn != s.human {
		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.delay):
			}
		}

		mover := s.state.Turn
		move, _, err := s.opponent.FindMove(s.state)
		if err != nil {
			return fmt.Errorf("opponent failed to move: %w", err)
		}
		reward, err := s.state.Place(move)
		if err != nil {
			return fmt.Errorf("opponent played %s: %w", move, err)
		}
		log.Debug().Msgf("opponent %s placed at %s for %d", mover, move, reward)
	}
	if s.state.Over {
		log.Info().Msgf("game over: %s", s.state.Outcome())
	}
	return nil
}

// walk moves the cursor, ignoring moves that would leave the board and
// diagonal moves unless they are enabled.
func (s *Session) walk(dCol, dRow int) {
	if dCol == 0 && dRow == 0 {
		return
	}
	if dCol != 0 && dRow != 0 && !s.diagonal {
		return
	}
	dest := game.Square{Col: s.cursor.Col + dCol, Row: s.cursor.Row + dRow}
	if dest.InBounds() {
		s.cursor = dest
	}
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	Score    int         `json:"score"` // Reward collected by the human side
	GameOver bool        `json:"game_over"`
	Turn     string      `json:"turn"`
	Human    string      `json:"human"`
	Cursor   game.Square `json:"cursor"`
	Step     int         `json:"step"`
	Board    []string    `json:"board"`
	Black    int         `json:"black"`
	White    int         `json:"white"`
	Winner   string      `json:"winner,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	outcome := s.state.Outcome()
	return Snapshot{
		Score:    s.state.Scores[s.human],
		GameOver: s.state.Over,
		Turn:     s.state.Player(),
		Human:    s.human.String(),
		Cursor:   s.cursor,
		Step:     s.step,
		Board:    s.state.Board.Rows(),
		Black:    outcome.Black,
		White:    outcome.White,
		Winner:   s.state.Winner(),
	}
}

// Query answers a point lookup with a JSON encoded value: "xy" is the cursor
// and "xyt" the cursor with the step counter.
func (s *Session) Query(key string) (string, error) {
	var value any
	switch key {
	case "xy":
		value = [2]int{s.cursor.Col, s.cursor.Row}
	case "xyt":
		value = [3]int{s.cursor.Col, s.cursor.Row, s.step}
	default:
		return "", fmt.Errorf("%w: %q", ErrNoSuchQuery, key)
	}
	out, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
