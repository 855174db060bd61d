package mcts

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/brensch/serpentengine/board"
)

// Node is one position in the search tree. A node at the "own move chosen"
// level fixes the viewpoint snake's move but not yet the opponents'; its
// children enumerate opponent action combinations and apply a full round to
// reach the next "resolved" level, whose own children again enumerate the
// viewpoint's own-move choices. This two-level alternation keeps the tree's
// branching factor from multiplying every snake's options together at a
// single ply.
type Node struct {
	Parent *Node
	Board  board.Board

	// AwaitingOpponents is true for a node that has fixed the viewpoint
	// snake's move (Move) but has not yet resolved what the opponents did;
	// Board is still the parent's board in that case. Its children apply
	// one opponent action combination each, producing resolved children.
	AwaitingOpponents bool
	Move              board.Move

	terminal bool

	visitCount     atomic.Int64
	totalScoreBits atomic.Uint64
	sumSquareBits  atomic.Uint64
	expandOnce     sync.Once
	children       []*Node
}

// Visits reports how many rollouts have backpropagated through this node.
func (n *Node) Visits() int64 { return n.visitCount.Load() }

// Average returns the mean backpropagated score, or 0 if never visited.
func (n *Node) Average() float64 {
	v := n.visitCount.Load()
	if v == 0 {
		return 0
	}
	return addFloat64Value(&n.totalScoreBits) / float64(v)
}

// Children returns the node's expanded children, nil if not yet expanded.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) record(value float64) {
	n.visitCount.Add(1)
	addFloat64(&n.totalScoreBits, value)
	addFloat64(&n.sumSquareBits, value*value)
}

func addFloat64(addr *atomic.Uint64, delta float64) {
	for {
		old := addr.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if addr.CompareAndSwap(old, next) {
			return
		}
	}
}

func addFloat64Value(addr *atomic.Uint64) float64 {
	return math.Float64frombits(addr.Load())
}

// ucbScore computes the UCB1-Normal selection value for a child given the
// total number of iterations run at the root so far. ucbConstant is the
// constant inside the radical (spec default 16); explorationFloorMultiplier
// scales the visit threshold below which a node is forced to +Inf (default
// 8, applied as explorationFloorMultiplier*ln(totalIterations)).
func ucbScore(child *Node, totalIterations int64, ucbConstant, explorationFloorMultiplier float64) float64 {
	n := child.visitCount.Load()
	if n < 2 {
		return math.Inf(1)
	}
	t := float64(totalIterations)
	if t <= 1 || float64(n) <= explorationFloorMultiplier*math.Log(t) {
		return math.Inf(1)
	}

	sum := addFloat64Value(&child.totalScoreBits)
	sumSq := addFloat64Value(&child.sumSquareBits)
	avg := sum / float64(n)

	variance := (sumSq - float64(n)*avg*avg) / float64(n-1)
	if variance < 0 {
		variance = 0
	}
	exploration := math.Sqrt(ucbConstant * variance * math.Log(t-1) / float64(n))
	return avg + exploration
}
