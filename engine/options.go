package engine

import (
	"log/slog"
	"time"

	"github.com/brensch/serpentengine/score"
	"github.com/brensch/serpentengine/search/minimax"
)

// Algorithm selects which search engine answers ChooseMove.
type Algorithm int

const (
	Minimax Algorithm = iota
	MCTS
)

func (a Algorithm) String() string {
	switch a {
	case MCTS:
		return "mcts"
	default:
		return "minimax"
	}
}

// Options configures an Engine. The zero value is valid; withDefaults
// fills in every documented default.
type Options struct {
	// NetworkLatencyPadding is subtracted from the caller's deadline to
	// form the decision deadline, leaving room to write the response.
	// Default 100ms, matching the padding a caller must budget for its
	// own round trip.
	NetworkLatencyPadding time.Duration

	// MoveOrdering selects the Minimax move-ordering strategy. Default
	// BestFirst.
	MoveOrdering minimax.MoveOrdering

	// Algorithm selects Minimax or MCTS. Default Minimax.
	Algorithm Algorithm

	// UseLazySMP enables multi-goroutine search sharing the transposition
	// cache, Minimax only.
	UseLazySMP bool

	// Eval is the static evaluator Minimax and the transposition cache
	// score with. Default score.AreaControlEval.
	Eval score.Eval[float64]

	// MCTSMaxRolloutSteps bounds an MCTS rollout's length. Default 25.
	MCTSMaxRolloutSteps int
	// MCTSUCBConstant is the constant inside the UCB1-Normal radical.
	// Default 16.
	MCTSUCBConstant float64
	// MCTSExplorationFloorMultiplier scales the visit threshold below
	// which a node is forced to explore. Default 8.
	MCTSExplorationFloorMultiplier float64

	// Logger receives search telemetry. Default slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.NetworkLatencyPadding == 0 {
		o.NetworkLatencyPadding = 100 * time.Millisecond
	}
	if o.Eval == nil {
		o.Eval = score.AreaControlEval
	}
	if o.MCTSMaxRolloutSteps == 0 {
		o.MCTSMaxRolloutSteps = 25
	}
	if o.MCTSUCBConstant == 0 {
		o.MCTSUCBConstant = 16
	}
	if o.MCTSExplorationFloorMultiplier == 0 {
		o.MCTSExplorationFloorMultiplier = 8
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
