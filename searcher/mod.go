package searcher

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const WIN = 1.0   // Reward for winning outcome
const LOSS = -WIN // Reward for loss outcome (negate from opponent perspective)

const MaxCutoff = 64 // No game of Othello outlasts the board

// computeReward converts a rollout score, given from player's perspective, to
// the perspective of mover. An empty player marks a drawn rollout.
func computeReward(player string, score float64, mover string) float64 {
	if player == "" || mover == "" {
		return 0
	}
	if player == mover {
		return score
	}
	return -score
}
