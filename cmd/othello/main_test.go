package main

import (
	"bytes"
	"os"
	"othello/config"
	"othello/session"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	require.True(t, parseInput("").Empty())
	require.Equal(t, session.Input{Up: true}, parseInput("w"))
	require.Equal(t, session.Input{Up: true, Right: true}, parseInput("WD"))
	require.Equal(t, session.Input{Button1: true}, parseInput(" "))
	require.True(t, parseInput("xyz").Empty(), "Unknown keys are ignored")
}

func TestPlayCommand(t *testing.T) {
	t.Run("places a disc against the random opponent", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("session:\n  opponent: random\n  opponent_delay: 0s\nlog:\n  level: disabled\n"), 0644))

		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetIn(strings.NewReader("d\nw\nf\nq\n"))
		root.SetArgs([]string{"play", "--config", path})

		require.NoError(t, root.Execute())
		require.Contains(t, out.String(), "turn Black, you are Black, score 2")
	})

	t.Run("reports illegal placements", func(t *testing.T) {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetIn(strings.NewReader("f\n"))
		root.SetArgs([]string{"play"})

		require.NoError(t, root.Execute())
		require.Contains(t, out.String(), "illegal move")
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("learner:\n  epsilon: 2\n"), 0644))

		root := newRootCmd()
		root.SetArgs([]string{"play", "--config", path})

		require.Error(t, root.Execute())
	})
}

func TestTrainCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"train", "--episodes", "5"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "episodes 5:")
}

func TestNewOpponent(t *testing.T) {
	cfg := config.Default()
	l := newLearner(cfg)
	for _, kind := range []string{"learner", "mcts", "random"} {
		cfg.Session.Opponent = kind
		a, err := newOpponent(cfg, l)
		require.NoError(t, err)
		require.NotNil(t, a, kind)
	}

	cfg.Session.Opponent = "none"
	a, err := newOpponent(cfg, l)
	require.NoError(t, err)
	require.Nil(t, a)
}
