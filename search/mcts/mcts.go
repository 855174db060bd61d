// Package mcts implements Monte Carlo Tree Search with UCB1-Normal
// selection as an alternative to paranoid minimax: instead of exhaustively
// exploring a bounded-depth tree, it runs many random-rollout iterations
// and lets statistics accumulated in an arena-backed tree guide where to
// spend the next iteration.
package mcts

import (
	"context"
	"errors"
	"math/rand"

	"github.com/brensch/serpentengine/board"
)

// ErrNoIterations is returned if the context was already done before the
// first iteration started, so the root has no informative statistics.
var ErrNoIterations = errors.New("mcts: no iterations completed before cancellation")

// Options configures one Search call. A zero Options uses the package
// defaults.
type Options struct {
	MaxRolloutSteps            int     // default 25
	UCBConstant                float64 // default 16
	ExplorationFloorMultiplier float64 // default 8
	Rand                       *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.MaxRolloutSteps == 0 {
		o.MaxRolloutSteps = 25
	}
	if o.UCBConstant == 0 {
		o.UCBConstant = 16
	}
	if o.ExplorationFloorMultiplier == 0 {
		o.ExplorationFloorMultiplier = 8
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(1))
	}
	return o
}

// Search runs MCTS iterations against b from the board's Viewpoint snake
// until ctx is cancelled, returning the root node. The caller reads the
// result via BestMove(root).
func Search(ctx context.Context, b board.Board, opts Options) (*Node, error) {
	opts = opts.withDefaults()
	viewpointIdx := b.SnakeByID(b.Viewpoint)

	arena := NewArena()
	root := arena.New()
	root.Board = b
	if viewpointIdx < 0 || !b.Snakes[viewpointIdx].Alive {
		root.terminal = true
		return root, nil
	}

	iterations := int64(0)
	for {
		select {
		case <-ctx.Done():
			if iterations == 0 {
				return nil, ErrNoIterations
			}
			return root, nil
		default:
		}

		iterations++
		runIteration(ctx, arena, root, viewpointIdx, b.Viewpoint, opts, iterations)
	}
}

// runIteration performs one selection/expansion/rollout/backpropagation
// pass starting at root.
func runIteration(ctx context.Context, arena *Arena, root *Node, viewpointIdx int, viewpointID int, opts Options, totalIterations int64) {
	node := root
	for {
		if node.terminal {
			break
		}
		if node.children == nil {
			expand(arena, node, viewpointIdx)
			if node.terminal || node.children == nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		node = selectChild(node, totalIterations, opts)
		if node.visitCount.Load() == 0 {
			break
		}
	}

	var value float64
	if node.terminal {
		winner, ok := node.Board.Winner()
		switch {
		case !ok:
			value = tieScore
		case winner == viewpointID:
			value = winScore
		default:
			value = loseScore
		}
	} else if node.AwaitingOpponents {
		mv := node.Move
		value = rollout(node.Board, viewpointID, &mv, opts.MaxRolloutSteps, opts.Rand)
	} else {
		value = rollout(node.Board, viewpointID, nil, opts.MaxRolloutSteps, opts.Rand)
	}

	for n := node; n != nil; n = n.Parent {
		n.record(value)
	}
}

// selectChild descends to the child with the highest UCB1-Normal score.
func selectChild(node *Node, totalIterations int64, opts Options) *Node {
	best := node.children[0]
	bestScore := ucbScore(best, totalIterations, opts.UCBConstant, opts.ExplorationFloorMultiplier)
	for _, child := range node.children[1:] {
		s := ucbScore(child, totalIterations, opts.UCBConstant, opts.ExplorationFloorMultiplier)
		if s > bestScore {
			best, bestScore = child, s
		}
	}
	return best
}

// BestMove returns the root's own-move child with the highest average
// score, ties broken by visit count, and the move that led to it.
func BestMove(root *Node) (board.Move, bool) {
	if len(root.children) == 0 {
		return 0, false
	}

	var best *Node
	for _, child := range root.children {
		if best == nil {
			best = child
			continue
		}
		if child.Average() > best.Average() {
			best = child
			continue
		}
		if child.Average() == best.Average() && child.Visits() > best.Visits() {
			best = child
		}
	}
	if best == nil {
		return 0, false
	}
	return best.Move, true
}
