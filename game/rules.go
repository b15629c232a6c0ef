package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange  = errors.New("square is off the board")
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
)

// run walks from s in direction d and returns the opponent discs it crosses
// when the walk ends on one of side's discs. It returns nil for open runs
// (board edge or empty cell) and for runs of length zero.
func (b *Board) run(side Cell, s Square, d direction) []Square {
	opponent := side.Opponent()
	var captured []Square
	next := s.step(d)
	for next.InBounds() && b.At(next) == opponent {
		captured = append(captured, next)
		next = next.step(d)
	}
	if len(captured) == 0 || !next.InBounds() || b.At(next) != side {
		return nil
	}
	return captured
}

// IsLegal reports whether side may place a disc on s. Squares off the board
// and occupied squares are never legal. The board is not modified.
func (b *Board) IsLegal(side Cell, s Square) bool {
	if side == Empty || !s.InBounds() || b.At(s) != Empty {
		return false
	}
	for _, d := range directions {
		if b.run(side, s, d) != nil {
			return true
		}
	}
	return false
}

// Flips returns every disc that a move by side on s would capture, across all
// eight directions. It is empty when the move is not legal.
func (b *Board) Flips(side Cell, s Square) []Square {
	if side == Empty || !s.InBounds() || b.At(s) != Empty {
		return nil
	}
	var flips []Square
	for _, d := range directions {
		flips = append(flips, b.run(side, s, d)...)
	}
	return flips
}

// LegalMoves enumerates the legal moves for side in row-major order.
func (b *Board) LegalMoves(side Cell) []Square {
	var moves []Square
	for _, s := range Squares() {
		if b.IsLegal(side, s) {
			moves = append(moves, s)
		}
	}
	return moves
}

// HasLegalMove reports whether side can place anywhere on the board.
func (b *Board) HasLegalMove(side Cell) bool {
	for _, s := range Squares() {
		if b.IsLegal(side, s) {
			return true
		}
	}
	return false
}

// Apply places side's disc on s, flips every bounded opponent run and
// returns the positional reward for the move. The move is validated first;
// an illegal move leaves the board untouched.
func (b *Board) Apply(side Cell, s Square, rewards RewardPolicy) (int, error) {
	if !s.InBounds() {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, s)
	}
	flips := b.Flips(side, s)
	if len(flips) == 0 {
		return 0, fmt.Errorf("%w: %s cannot play %s", ErrIllegalMove, side, s)
	}
	b.set(s, side)
	for _, f := range flips {
		b.set(f, side)
	}
	return rewards.Reward(s, len(flips)), nil
}
