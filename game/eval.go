package game

// EvaluateDiscs tallies discs, mobility and corners for each side to produce
// a relative score between -1 and 1 from the perspective of the side to move.
func EvaluateDiscs(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Turn
	opponent := current.Opponent()

	discScore := normalize(float64(gs.Board.Count(current)), float64(gs.Board.Count(opponent)))
	mobilityScore := normalize(float64(len(gs.Board.LegalMoves(current))), float64(len(gs.Board.LegalMoves(opponent))))
	cornerScore := normalize(gs.corners(current), gs.corners(opponent))

	// Weighted combination (equal weights for now)
	return (discScore + mobilityScore + cornerScore) / 3.0
}

func (gs *GameState) corners(side Cell) float64 {
	n := 0.0
	for _, s := range []Square{{1, 1}, {Size, 1}, {1, Size}, {Size, Size}} {
		if gs.Board.At(s) == side {
			n++
		}
	}
	return n
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
