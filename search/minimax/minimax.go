// Package minimax implements paranoid alpha-beta search over one round at a
// time: one viewpoint snake maximizing, every other snake treated as a
// single collaborating minimizer. Moves accumulate in a pending action
// buffer one ply at a time and board.Apply is only called once every snake
// in the round has chosen, preserving simultaneous-move semantics.
package minimax

import (
	"context"
	"errors"
	"math/rand"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/brensch/serpentengine/board"
	"github.com/brensch/serpentengine/score"
)

// ErrAbortedEarly is returned when the supplied context is cancelled mid
// search. It is not fatal: the deepening controller treats it as "stop, use
// the last completed depth".
var ErrAbortedEarly = errors.New("minimax: aborted early")

// MoveOrdering selects how children are ordered at each node.
type MoveOrdering int

const (
	// BestFirst reuses the previous iteration's best-child ordering,
	// appending newly discovered moves at the end.
	BestFirst MoveOrdering = iota
	// Random shuffles moves, used by Lazy SMP's background searchers for
	// diversification.
	Random
)

// Option pairs a move with the search result of taking it.
type Option[S constraints.Ordered] struct {
	Move  board.Move
	Child Return[S]
}

// Return is a minimax tree node: either a Leaf (IsLeaf true, only Score
// meaningful) or a Node whose Options are sorted so the chosen move is
// first.
type Return[S constraints.Ordered] struct {
	IsLeaf      bool
	Maximizing  bool
	MovingSnake int
	Options     []Option[S]

	score score.Score[S]
}

// Score returns the node's score: for a Leaf, the wrapped terminal/static
// score; for a Node, the first (best) child's score after reordering.
func (r Return[S]) Score() score.Score[S] { return r.score }

// BestMove returns the first-ranked move at a Node, or false at a Leaf or a
// Node with no legal moves.
func (r Return[S]) BestMove() (board.Move, bool) {
	if r.IsLeaf || len(r.Options) == 0 {
		var zero board.Move
		return zero, false
	}
	return r.Options[0].Move, true
}

// Search runs one fixed-depth paranoid minimax pass from the root. players
// must list every snake id with the viewpoint snake first; maxDepth is in
// plies and should be a multiple of len(players) so terminal checks land on
// round boundaries. previous, if non-nil, supplies BestFirst ordering hints
// from the prior iterative-deepening pass.
func Search[S constraints.Ordered](
	ctx context.Context,
	b board.Board,
	players []int,
	maxDepth int,
	eval score.Eval[S],
	ordering MoveOrdering,
	previous *Return[S],
	rng *rand.Rand,
) (Return[S], error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	var pending board.Action
	return search(ctx, b, players, 0, maxDepth, score.WorstPossible[S](), score.BestPossible[S](), pending, eval, ordering, previous, rng)
}

func search[S constraints.Ordered](
	ctx context.Context,
	b board.Board,
	players []int,
	depth, maxDepth int,
	alpha, beta score.Score[S],
	pending board.Action,
	eval score.Eval[S],
	ordering MoveOrdering,
	previous *Return[S],
	rng *rand.Rand,
) (Return[S], error) {
	n := len(players)
	if depth%n == 0 {
		if leaf, isLeaf := score.Wrap(b, depth, maxDepth, n, eval); isLeaf {
			return Return[S]{IsLeaf: true, score: leaf}, nil
		}
	}

	select {
	case <-ctx.Done():
		return Return[S]{}, ErrAbortedEarly
	default:
	}

	movingID := players[depth%n]
	idx := b.SnakeByID(movingID)
	isRoundEnd := depth%n == n-1

	if idx < 0 || !b.IsAlive(idx) {
		// A dead snake contributes no move, but the round still advances
		// once every currently-alive snake's move is pending: a dead
		// snake's absence from the buffer must not stall Apply past the
		// round boundary.
		nextBoard := b
		nextPending := pending
		if isRoundEnd {
			applied, err := b.Apply(pending)
			if err != nil {
				return Return[S]{}, err
			}
			nextBoard = applied
			nextPending = board.Action{}
		}
		return search(ctx, nextBoard, players, depth+1, maxDepth, alpha, beta, nextPending, eval, ordering, childHintBySkip(previous), rng)
	}

	maximizing := movingID == b.Viewpoint
	moveArr, count := b.PossibleMoves(idx)
	moves := orderMoves(moveArr[:count], ordering, previous, rng)
	if len(moves) == 0 {
		moves = []board.Move{board.Up}
	}

	options := make([]Option[S], 0, len(moves))

	a, be := alpha, beta
	for _, mv := range moves {
		select {
		case <-ctx.Done():
			return Return[S]{}, ErrAbortedEarly
		default:
		}

		childPending := pending
		childPending.Set(movingID, mv)

		nextBoard := b
		nextPending := childPending
		if isRoundEnd {
			applied, err := b.Apply(childPending)
			if err != nil {
				return Return[S]{}, err
			}
			nextBoard = applied
			nextPending = board.Action{}
		}

		childReturn, err := search(ctx, nextBoard, players, depth+1, maxDepth, a, be, nextPending, eval, ordering, childHint(previous, mv), rng)
		if err != nil {
			return Return[S]{}, err
		}

		options = append(options, Option[S]{Move: mv, Child: childReturn})
		cs := childReturn.Score()
		if maximizing {
			if score.Less(a, cs) {
				a = cs
			}
		} else if score.Less(cs, be) {
			be = cs
		}
		if score.Less(be, a) {
			break
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		return score.Less(options[i].Child.Score(), options[j].Child.Score())
	})
	if maximizing {
		reverseOptions(options)
	}

	return Return[S]{
		Maximizing:  maximizing,
		MovingSnake: movingID,
		Options:     options,
		score:       options[0].Child.Score(),
	}, nil
}

func reverseOptions[S constraints.Ordered](o []Option[S]) {
	for i, j := 0, len(o)-1; i < j; i, j = i+1, j-1 {
		o[i], o[j] = o[j], o[i]
	}
}
