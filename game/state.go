package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

const Tie = "Tie"

// GameState represents the dynamic state of a game at any point: the board,
// whose turn it is, the reward each side has collected and whether the game
// has ended.
type GameState struct {
	Board    Board        // Current position
	Turn     Cell         // Side to move, never Empty
	Scores   [3]int       // Accumulated reward, indexed by Cell
	Over     bool         // Neither side can move
	LastMove *Square      // The last move made, nil before the first move
	Moves    int          // Number of moves played
	Rewards  RewardPolicy // Positional reward weights
}

// NewGameState returns a game at the standard opening with Black to move.
func NewGameState(rewards RewardPolicy) *GameState {
	return NewGameStateFrom(NewBoard(), Black, rewards)
}

// NewGameStateFrom starts a game from an arbitrary position. If turn has no
// legal move the turn passes; if neither side can move the game is over.
func NewGameStateFrom(board Board, turn Cell, rewards RewardPolicy) *GameState {
	gs := &GameState{
		Board:   board,
		Turn:    turn,
		Rewards: rewards,
	}
	if !gs.Board.HasLegalMove(turn) {
		if gs.Board.HasLegalMove(turn.Opponent()) {
			gs.Turn = turn.Opponent()
		} else {
			gs.Over = true
		}
	}
	return gs
}

func (gs GameState) Copy() *GameState {
	c := gs
	if gs.LastMove != nil {
		last := *gs.LastMove
		c.LastMove = &last
	}
	return &c
}

// Place applies the current side's move on s and advances the turn. It fails
// with ErrGameOver once the game has ended and with ErrIllegalMove (leaving
// the state untouched) when s is not a legal move.
func (gs *GameState) Place(s Square) (int, error) {
	if gs.Over {
		return 0, ErrGameOver
	}
	mover := gs.Turn
	reward, err := gs.Board.Apply(mover, s, gs.Rewards)
	if err != nil {
		return 0, err
	}
	gs.Scores[mover] += reward
	gs.Moves++
	last := s
	gs.LastMove = &last
	gs.advance(mover)
	return reward, nil
}

// advance hands the turn to the opponent. An opponent without a legal move
// passes back to the mover; when the mover is stuck as well the game is over.
func (gs *GameState) advance(mover Cell) {
	moverCanMove := gs.Board.HasLegalMove(mover)
	next := mover.Opponent()
	nextCanMove := gs.Board.HasLegalMove(next)

	switch {
	case nextCanMove:
		gs.Turn = next
	case moverCanMove:
		gs.Turn = mover
	default:
		gs.Turn = next
		gs.Over = true
	}
}

// Passed reports whether the last move left the same side to move.
func (gs *GameState) Passed(before Cell) bool {
	return !gs.Over && gs.Turn == before
}

// Player returns the identifier of the side to move.
func (gs GameState) Player() string {
	return gs.Turn.String()
}

// LegalMoves returns all legal moves for the side to move, none once over.
func (gs GameState) LegalMoves() []Square {
	if gs.Over {
		return nil
	}
	return gs.Board.LegalMoves(gs.Turn)
}

// Play returns the state after the side to move plays s. It panics on an
// illegal move: callers pick s from LegalMoves.
func (gs GameState) Play(s Square) State {
	next := gs.Copy()
	if _, err := next.Place(s); err != nil {
		panic(err)
	}
	return next
}

// Outcome is the disc tally of a position.
type Outcome struct {
	Black  int  `json:"black"`
	White  int  `json:"white"`
	Winner Cell `json:"winner"` // Empty on a tie
}

func (o Outcome) String() string {
	if o.Winner == Empty {
		return fmt.Sprintf("%s %d-%d", Tie, o.Black, o.White)
	}
	return fmt.Sprintf("%s wins %d-%d", o.Winner, o.Black, o.White)
}

// Outcome tallies the discs on the board. The side with strictly more discs
// wins; equal counts are a tie.
func (gs GameState) Outcome() Outcome {
	o := Outcome{
		Black: gs.Board.Count(Black),
		White: gs.Board.Count(White),
	}
	switch {
	case o.Black > o.White:
		o.Winner = Black
	case o.White > o.Black:
		o.Winner = White
	}
	return o
}

// Winner returns "Black", "White" or "Tie" once the game is over and "" while
// it is still being played.
func (gs GameState) Winner() string {
	if !gs.Over {
		return ""
	}
	o := gs.Outcome()
	if o.Winner == Empty {
		return Tie
	}
	return o.Winner.String()
}

func (gs GameState) Hash() StateHash {
	hasher := fnv.New64a()

	// Hash side to move
	binary.Write(hasher, binary.LittleEndian, int8(gs.Turn))

	// Hash cells
	for r := range gs.Board {
		for _, cell := range gs.Board[r] {
			binary.Write(hasher, binary.LittleEndian, int8(cell))
		}
	}

	return StateHash(hasher.Sum64())
}
