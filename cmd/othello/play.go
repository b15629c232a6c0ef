package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"othello/config"
	"othello/game"
	"othello/session"
	"strings"

	"github.com/spf13/cobra"
)

func newPlayCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal: w/a/s/d move the cursor, f or space places a disc, q quits",
		RunE: func(cmd *cobra.Command, args []string) error {
			opponent, err := newOpponent(*cfg, newLearner(*cfg))
			if err != nil {
				return err
			}
			sess := sessionFactory(*cfg, opponent)()
			return play(cmd, sess, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func play(cmd *cobra.Command, sess *session.Session, in io.Reader, out io.Writer) error {
	render(out, sess.Snapshot())
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if line == "q" || line == "quit" {
			return nil
		}
		err := sess.Update(cmd.Context(), parseInput(scanner.Text()))
		switch {
		case errors.Is(err, game.ErrIllegalMove), errors.Is(err, session.ErrNotYourTurn):
			fmt.Fprintln(out, err)
		case err != nil:
			return err
		}
		snap := sess.Snapshot()
		render(out, snap)
		if snap.GameOver {
			fmt.Fprintf(out, "game over: %s\n", sess.State().Outcome())
			return nil
		}
	}
	return scanner.Err()
}

// parseInput maps a line of keys to one input frame. Several keys on one
// line are pressed together.
func parseInput(line string) session.Input {
	var in session.Input
	for _, key := range strings.ToLower(line) {
		switch key {
		case 'w':
			in.Up = true
		case 'a':
			in.Left = true
		case 's':
			in.Down = true
		case 'd':
			in.Right = true
		case 'f', ' ':
			in.Button1 = true
		case 'e':
			in.Button2 = true
		}
	}
	return in
}

func render(out io.Writer, snap session.Snapshot) {
	for r, row := range snap.Board {
		line := []byte(row)
		if r+1 == snap.Cursor.Row {
			fmt.Fprintf(out, "%s   <- cursor at column %d\n", line, snap.Cursor.Col)
			continue
		}
		fmt.Fprintln(out, string(line))
	}
	fmt.Fprintf(out, "turn %s, you are %s, score %d, discs B%d W%d, step %d\n",
		snap.Turn, snap.Human, snap.Score, snap.Black, snap.White, snap.Step)
}
