// Package deepening implements the producer/consumer iterative-deepening
// controller: a worker runs minimax at increasing depths while a controller
// polls for completed iterations against a wall-clock deadline derived by
// padding the caller's move deadline, so a move is always returned in time
// even when deeper searches don't finish.
package deepening

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/brensch/serpentengine/board"
	"github.com/brensch/serpentengine/score"
	"github.com/brensch/serpentengine/search/minimax"
)

// ErrNoCompletedDepth is fatal: the deadline elapsed before even the first
// iteration (depth = len(players)) finished, meaning the deadline padding
// or the per-node cost is misconfigured for the current load.
var ErrNoCompletedDepth = errors.New("deepening: no depth completed before deadline")

// Result is the best complete minimax iteration observed before the
// controller stopped.
type Result[S constraints.Ordered] struct {
	Depth int
	Tree  minimax.Return[S]
}

// Run computes deadline = gameDeadline - padding, then repeatedly searches
// at depth = len(players), 2*len(players), ... until the deadline elapses
// or a completed iteration's score is terminal within the search horizon
// (the "stop" advisory), returning the best completed iteration. It is
// fatal (ErrNoCompletedDepth) if no iteration completed in time.
func Run[S constraints.Ordered](
	parent context.Context,
	b board.Board,
	players []int,
	gameDeadline time.Time,
	padding time.Duration,
	eval score.Eval[S],
	ordering minimax.MoveOrdering,
	rng *rand.Rand,
) (Result[S], error) {
	ctx, cancel := context.WithDeadline(parent, gameDeadline.Add(-padding))
	defer cancel()

	type msg struct {
		depth int
		tree  minimax.Return[S]
		err   error
	}
	results := make(chan msg, 1)

	go func() {
		n := len(players)
		var previous *minimax.Return[S]
		for depth := n; ; depth += n {
			tree, err := minimax.Search(ctx, b, players, depth, eval, ordering, previous, rng)
			if err != nil {
				select {
				case results <- msg{depth: depth, err: err}:
				case <-ctx.Done():
				}
				return
			}
			previous = &tree
			select {
			case results <- msg{depth: depth, tree: tree}:
			case <-ctx.Done():
				return
			}
			if terminalWithinHorizon(tree, depth) {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()

	var best Result[S]
	haveResult := false
	for {
		select {
		case m := <-results:
			if m.err != nil {
				return finish(best, haveResult)
			}
			best = Result[S]{Depth: m.depth, Tree: m.tree}
			haveResult = true
			if terminalWithinHorizon(m.tree, m.depth) {
				cancel()
				return finish(best, haveResult)
			}
		case <-ctx.Done():
			return finish(best, haveResult)
		}
	}
}

func finish[S constraints.Ordered](best Result[S], have bool) (Result[S], error) {
	if !have {
		return Result[S]{}, ErrNoCompletedDepth
	}
	return best, nil
}

func terminalWithinHorizon[S constraints.Ordered](tree minimax.Return[S], depth int) bool {
	d, ok := tree.Score().Depth()
	if !ok {
		return false
	}
	return d <= depth
}
