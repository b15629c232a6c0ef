package agent

import (
	"othello/game"
	"othello/searcher"
)

// lineage tracks the moves played since an agent last searched so that the
// searcher can reuse its tree.
type lineage struct {
	segments []searcher.Segment
	moves    int // Move count after the agent's own move
}

// since returns the segments leading to state. Only an opponent pass or a
// single opponent reply can be reconstructed from the state, anything else
// resets the tree.
func (l *lineage) since(state *game.GameState) []searcher.Segment {
	switch {
	case l.segments == nil:
		return nil
	case state.Moves == l.moves: // Opponent passed
		return l.segments
	case state.Moves == l.moves+1 && state.LastMove != nil:
		return append(l.segments, searcher.Segment{Move: *state.LastMove, StateHash: state.Hash()})
	}
	return nil
}

func (l *lineage) record(state *game.GameState, move game.Square) {
	next := state.Play(move)
	l.segments = []searcher.Segment{{Move: move, StateHash: next.Hash()}}
	l.moves = state.Moves + 1
}
