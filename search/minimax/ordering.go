package minimax

import (
	"math/rand"

	"golang.org/x/exp/constraints"

	"github.com/brensch/serpentengine/board"
)

// orderMoves applies BestFirst or Random ordering to the legal moves at a
// node, given the matching node from the previous iterative-deepening pass
// (nil if there was none, e.g. the first iteration).
func orderMoves[S constraints.Ordered](moves []board.Move, ordering MoveOrdering, previous *Return[S], rng *rand.Rand) []board.Move {
	switch ordering {
	case Random:
		out := append([]board.Move(nil), moves...)
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	default:
		return bestFirstOrder(moves, previous)
	}
}

// bestFirstOrder reuses the previous pass's child ordering (already sorted
// best-first), filtered down to moves still legal now, with any newly legal
// moves appended at the end.
func bestFirstOrder[S constraints.Ordered](moves []board.Move, previous *Return[S]) []board.Move {
	if previous == nil || previous.IsLeaf || len(previous.Options) == 0 {
		return moves
	}

	legal := make(map[board.Move]bool, len(moves))
	for _, m := range moves {
		legal[m] = true
	}

	ordered := make([]board.Move, 0, len(moves))
	seen := make(map[board.Move]bool, len(moves))
	for _, opt := range previous.Options {
		if legal[opt.Move] && !seen[opt.Move] {
			ordered = append(ordered, opt.Move)
			seen[opt.Move] = true
		}
	}
	for _, m := range moves {
		if !seen[m] {
			ordered = append(ordered, m)
			seen[m] = true
		}
	}
	return ordered
}

// childHint locates the previous pass's child node reached by playing mv at
// this node, if any, to seed the next depth down's BestFirst ordering.
func childHint[S constraints.Ordered](previous *Return[S], mv board.Move) *Return[S] {
	if previous == nil || previous.IsLeaf {
		return nil
	}
	for i := range previous.Options {
		if previous.Options[i].Move == mv {
			return &previous.Options[i].Child
		}
	}
	return nil
}

// childHintBySkip propagates the hint through a dead-snake ply, which
// consumes a depth without adding an Option layer of its own.
func childHintBySkip[S constraints.Ordered](previous *Return[S]) *Return[S] {
	return previous
}
