package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"othello/game"
	"othello/meta"
)

// Config contains everything needed to run games, train the learning
// opponent and serve sessions. It is loaded from YAML over Default().
type Config struct {
	Learner LearnerConfig     `yaml:"learner"`
	Rewards game.RewardPolicy `yaml:"rewards"`
	Session SessionConfig     `yaml:"session"`
	Search  SearchConfig      `yaml:"search"`
	Log     LogConfig         `yaml:"log"`
	Server  ServerConfig      `yaml:"server"`
}

// LearnerConfig holds the learning opponent's hyperparameters.
type LearnerConfig struct {
	Epsilon      float64 `yaml:"epsilon" validate:"gte=0,lte=1"`
	Alpha        float64 `yaml:"alpha" validate:"gt=0,lte=1"`
	Gamma        float64 `yaml:"gamma" validate:"gte=0,lte=1"`
	InitialValue float64 `yaml:"initial_value"`
	Seed         uint64  `yaml:"seed"`
}

// SessionConfig describes a human-facing game.
type SessionConfig struct {
	HumanSide       string        `yaml:"human_side" validate:"oneof=black white"`
	Opponent        string        `yaml:"opponent" validate:"oneof=learner mcts random none"`
	OpponentDelay   time.Duration `yaml:"opponent_delay" validate:"gte=0"`
	DiagonalSupport bool          `yaml:"diagonal_support"`
	Opening         []string      `yaml:"opening" validate:"omitempty,len=8,dive,len=8"`
}

// SearchConfig configures the MCTS benchmark opponent.
type SearchConfig struct {
	Goroutines int           `yaml:"goroutines" validate:"gte=1"`
	Episodes   int           `yaml:"episodes" validate:"gte=0"`
	Duration   time.Duration `yaml:"duration" validate:"gte=0"`
	Cutoff     int           `yaml:"cutoff" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `yaml:"pretty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

var validate = validator.New()

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Learner: LearnerConfig{
			Epsilon:      meta.EPSILON,
			Alpha:        meta.ALPHA,
			Gamma:        meta.GAMMA,
			InitialValue: meta.INITIAL_VALUE,
			Seed:         1,
		},
		Rewards: game.DefaultRewards(),
		Session: SessionConfig{
			HumanSide:     "black",
			Opponent:      "learner",
			OpponentDelay: meta.OPPONENT_DELAY,
		},
		Search: SearchConfig{
			Goroutines: meta.GO_ROUTINES,
			Episodes:   meta.EPISODES,
			Cutoff:     meta.WITH_CUTOFF,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Search.Episodes <= 0 && c.Search.Duration <= 0 {
		return errors.New("invalid config: search needs episodes or a duration")
	}
	if _, err := c.OpeningBoard(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HumanCell maps the configured human side to a board cell.
func (c Config) HumanCell() game.Cell {
	if strings.EqualFold(c.Session.HumanSide, "white") {
		return game.White
	}
	return game.Black
}

// OpeningBoard returns the configured opening or the standard one.
func (c Config) OpeningBoard() (game.Board, error) {
	if len(c.Session.Opening) == 0 {
		return game.NewBoard(), nil
	}
	return game.ParseBoard(c.Session.Opening)
}

// LogLevel parses the configured level.
func (c Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
