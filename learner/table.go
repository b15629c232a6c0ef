package learner

import (
	"othello/game"
)

// Key identifies a value table entry: a full board snapshot and a move on it.
type Key struct {
	Board game.Board
	Move  game.Square
}

// Table maps (board, move) pairs to an estimate of the long-run return of
// playing the move on the board. Entries are created on first lookup with the
// initial value and are never deleted. A Table has a single writer: the
// Learner it is handed to.
type Table struct {
	values  map[Key]float64
	initial float64
}

func NewTable(initial float64) *Table {
	return &Table{
		values:  make(map[Key]float64),
		initial: initial,
	}
}

// Value returns the estimate for playing m on b, creating the entry with the
// initial value if it has not been seen.
func (t *Table) Value(b game.Board, m game.Square) float64 {
	key := Key{Board: b, Move: m}
	v, ok := t.values[key]
	if !ok {
		v = t.initial
		t.values[key] = v
	}
	return v
}

func (t *Table) Set(b game.Board, m game.Square, v float64) {
	t.values[Key{Board: b, Move: m}] = v
}

// Best returns the highest valued move among moves. Ties go to the move listed
// first. It panics when moves is empty.
func (t *Table) Best(b game.Board, moves []game.Square) (game.Square, float64) {
	if len(moves) == 0 {
		panic("no moves to choose from")
	}
	best := moves[0]
	bestValue := t.Value(b, best)
	for _, m := range moves[1:] {
		if v := t.Value(b, m); v > bestValue {
			best, bestValue = m, v
		}
	}
	return best, bestValue
}

// Len is the number of entries created so far.
func (t *Table) Len() int {
	return len(t.values)
}

// Initial is the value assigned to unseen entries.
func (t *Table) Initial() float64 {
	return t.initial
}
