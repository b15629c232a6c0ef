// meta/meta.go
package meta

import "time"

// EPSILON is the exploration rate of the learning opponent.
const EPSILON = 0.2

// ALPHA is the learning rate of the temporal-difference update.
const ALPHA = 0.2

// GAMMA discounts the bootstrapped value of the next position.
const GAMMA = 0.8

// INITIAL_VALUE is the optimistic value of a move never seen before.
const INITIAL_VALUE = 1.0

// OPPONENT_DELAY pauses the automated opponent before it acts.
const OPPONENT_DELAY = 500 * time.Millisecond

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the cutoff value for MCTS.
const WITH_CUTOFF = 100

// MAX_TURNS bounds a game loop. A game of Othello never exceeds 60 moves.
const MAX_TURNS = 60
