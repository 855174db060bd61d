package mcts

import "sync"

// blockSize bounds how many nodes each arena block holds before a new block
// is appended. A node's address never changes once allocated: existing
// blocks are never resized or copied, only new ones are appended, so a
// pointer handed out by Arena.New stays valid for the arena's lifetime.
const blockSize = 4096

// Arena is a bump allocator for Node values, freed all at once when a
// decision's tree is discarded. It exists so a single decision's worth of
// search (which can allocate tens of thousands of nodes) doesn't put
// individual pressure on the garbage collector per node.
type Arena struct {
	mu     sync.Mutex
	blocks [][]Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{blocks: [][]Node{make([]Node, 0, blockSize)}}
}

// New allocates a zero-value Node from the arena and returns its stable
// address. Safe for concurrent use: the mutex only guards the bump pointer,
// never a node already handed out.
func (a *Arena) New() *Node {
	a.mu.Lock()
	defer a.mu.Unlock()

	last := len(a.blocks) - 1
	if len(a.blocks[last]) == cap(a.blocks[last]) {
		a.blocks = append(a.blocks, make([]Node, 0, blockSize))
		last++
	}
	a.blocks[last] = append(a.blocks[last], Node{})
	return &a.blocks[last][len(a.blocks[last])-1]
}
