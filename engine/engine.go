// Package engine wires the board representation, transposition cache, and
// search engines into one caller-facing decision API: board and deadline
// in, a single move out.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/brensch/serpentengine/board"
	"github.com/brensch/serpentengine/cache"
	"github.com/brensch/serpentengine/search/deepening"
	"github.com/brensch/serpentengine/search/lazysmp"
	mctssearch "github.com/brensch/serpentengine/search/mcts"
)

// Stats carries diagnostic information about how a Decision was reached,
// useful for logging but never formatted or transmitted by the engine
// itself.
type Stats struct {
	Algorithm  Algorithm
	Depth      int
	Iterations int64
	CacheSize  int
}

// Decision is the result of one ChooseMove call.
type Decision struct {
	Move  board.Move
	Shout string
	Stats Stats
}

// Engine answers move decisions for one viewpoint snake, reusing a
// transposition cache across calls.
type Engine struct {
	cache   *cache.Cache[float64]
	options Options
}

// New returns an Engine configured by opts (zero value uses every default).
func New(opts Options) *Engine {
	return &Engine{
		cache:   cache.New[float64](),
		options: opts.withDefaults(),
	}
}

// ChooseMove picks a move for b.Viewpoint, returning before deadline minus
// the configured network latency padding.
func (e *Engine) ChooseMove(ctx context.Context, b board.Board, deadline time.Time) (Decision, error) {
	opts := e.options
	decisionDeadline := deadline.Add(-opts.NetworkLatencyPadding)
	logger := opts.Logger.With("viewpoint", b.Viewpoint, "algorithm", opts.Algorithm)

	if opts.Algorithm == MCTS {
		return e.chooseMoveMCTS(ctx, b, decisionDeadline, logger)
	}
	return e.chooseMoveMinimax(ctx, b, playersInTurnOrder(b), decisionDeadline, logger)
}

func (e *Engine) chooseMoveMinimax(ctx context.Context, b board.Board, players []int, deadline time.Time, logger *slog.Logger) (Decision, error) {
	opts := e.options

	var (
		result deepening.Result[float64]
		err    error
	)
	if opts.UseLazySMP {
		result, err = lazysmp.Run(ctx, b, players, deadline, 0, opts.Eval, e.cache)
	} else {
		cachedEval := func(bd board.Board) float64 { return e.cache.Score(bd, opts.Eval) }
		result, err = deepening.Run(ctx, b, players, deadline, 0, cachedEval, opts.MoveOrdering, nil)
	}
	if err != nil {
		return Decision{}, fmt.Errorf("engine: minimax decision failed: %w", err)
	}

	mv, ok := result.Tree.BestMove()
	if !ok {
		return Decision{}, fmt.Errorf("engine: minimax produced no move: %w", ErrNoMove)
	}

	stats := Stats{Algorithm: Minimax, Depth: result.Depth, CacheSize: e.cache.Len()}
	logger.Debug("chose move", "move", mv.String(), "depth", stats.Depth, "cache_size", stats.CacheSize)
	return Decision{Move: mv, Stats: stats}, nil
}

func (e *Engine) chooseMoveMCTS(ctx context.Context, b board.Board, deadline time.Time, logger *slog.Logger) (Decision, error) {
	opts := e.options
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	root, err := mctssearch.Search(ctx, b, mctssearch.Options{
		MaxRolloutSteps:            opts.MCTSMaxRolloutSteps,
		UCBConstant:                opts.MCTSUCBConstant,
		ExplorationFloorMultiplier: opts.MCTSExplorationFloorMultiplier,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("engine: mcts decision failed: %w", err)
	}

	mv, ok := mctssearch.BestMove(root)
	if !ok {
		return Decision{}, fmt.Errorf("engine: mcts produced no move: %w", ErrNoMove)
	}

	stats := Stats{Algorithm: MCTS, Iterations: root.Visits()}
	logger.Debug("chose move", "move", mv.String(), "iterations", stats.Iterations)
	return Decision{Move: mv, Stats: stats}, nil
}

// playersInTurnOrder returns every alive snake's id, viewpoint first, then
// the rest in ascending id order, so each minimax round visits the
// viewpoint's ply before any opponent's.
func playersInTurnOrder(b board.Board) []int {
	players := make([]int, 0, b.NumSnakes)
	for i := 0; i < b.NumSnakes; i++ {
		if b.Snakes[i].Alive && b.Snakes[i].ID != b.Viewpoint {
			players = append(players, b.Snakes[i].ID)
		}
	}
	sort.Ints(players)

	if idx := b.SnakeByID(b.Viewpoint); idx >= 0 && b.Snakes[idx].Alive {
		players = append([]int{b.Viewpoint}, players...)
	}
	return players
}
