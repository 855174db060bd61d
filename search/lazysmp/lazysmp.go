// Package lazysmp runs several independent iterative-deepening searches
// concurrently against a single shared transposition cache: one main
// searcher using BestFirst move ordering and runtime.NumCPU()-1 background
// searchers using Random ordering, so each worker explores the game tree in
// a different order and feeds its findings into the shared cache for the
// others to reuse. Only the main searcher's result is reported; the
// background searchers exist purely to warm the cache before future calls.
package lazysmp

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/brensch/serpentengine/board"
	"github.com/brensch/serpentengine/cache"
	"github.com/brensch/serpentengine/score"
	"github.com/brensch/serpentengine/search/deepening"
	"github.com/brensch/serpentengine/search/minimax"
)

// NumWorkers reports how many background searchers Run will spawn for the
// current machine, not counting the main searcher.
func NumWorkers() int {
	if n := runtime.NumCPU() - 1; n > 0 {
		return n
	}
	return 0
}

// Run launches NumWorkers background searchers (Random ordering) alongside
// one main searcher (BestFirst ordering), all scoring through the same
// shared cache so a position whose score one worker has stored is not
// recomputed by another. It returns the main searcher's result; background searchers are
// cancelled once the main searcher finishes.
func Run[S constraints.Ordered](
	parent context.Context,
	b board.Board,
	players []int,
	gameDeadline time.Time,
	padding time.Duration,
	eval score.Eval[S],
	shared *cache.Cache[S],
) (deepening.Result[S], error) {
	cachedEval := func(bd board.Board) S {
		return shared.Score(bd, eval)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var wg sync.WaitGroup
	for i, n := 0, NumWorkers(); i < n; i++ {
		wg.Add(1)
		rng := rand.New(rand.NewSource(int64(i) + 1))
		go func() {
			defer wg.Done()
			_, _ = deepening.Run(ctx, b, players, gameDeadline, padding, cachedEval, minimax.Random, rng)
		}()
	}

	result, err := deepening.Run(parent, b, players, gameDeadline, padding, cachedEval, minimax.BestFirst, nil)
	cancel()
	wg.Wait()
	return result, err
}
