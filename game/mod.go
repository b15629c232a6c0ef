package game

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() string
	LegalMoves() []Square
	Play(Square) State
	Hash() StateHash
	Winner() string
}

type StateHash uint64

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
