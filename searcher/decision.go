package searcher

import (
	"math"
	"othello/game"
	"sync"

	"golang.org/x/exp/rand"
)

// decision is a node at which the player to move picks a square. Its rewards
// are kept from the perspective of mover, the player whose move led here.
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      string
	hash       game.StateHash
	unexplored []game.Square
	explored   []game.Square
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, mover string, state game.State) *decision {
	moves := state.LegalMoves()
	rand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	return &decision{
		parent:     parent,
		mover:      mover,
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]game.Square, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand returns the next node along the tree policy with its state,
// and whether the node was selected among existing children.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[len(d.unexplored)-1]
		d.unexplored = d.unexplored[:len(d.unexplored)-1]

		next := state.Play(move)
		child := newDecision(d, state.Player(), next)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) pickChild() int {
	total := 0.0
	for _, child := range d.children {
		total += child.visitCount()
	}
	policy := newUCT(CSquared, math.Max(total, 1))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(policy); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= LOSS
	d.visits--
}

func (d *decision) score(policy *uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) visitCount() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Backup records a rollout result, scored from player's perspective, and
// returns the parent to continue with.
func (d *decision) Backup(player string, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += computeReward(player, score, d.mover)
	d.visits++

	return d.parent
}

// Policy returns the visit count of every explored move.
func (d *decision) Policy() map[game.Square]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Square]float64, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.visitCount()
	}
	return policy
}

func (d *decision) child(move game.Square) *decision {
	d.RLock()
	defer d.RUnlock()

	for i, m := range d.explored {
		if m == move {
			return d.children[i]
		}
	}
	return nil
}
