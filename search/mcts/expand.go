package mcts

import (
	"github.com/brensch/serpentengine/board"
)

// reasonableMoves returns a snake's heuristically sensible moves (the same
// neck-exclusion filter board.PossibleMoves already applies), falling back
// to every direction if the filter leaves none.
func reasonableMoves(b board.Board, idx int) []board.Move {
	moves, n := b.PossibleMoves(idx)
	if n == 0 {
		return append([]board.Move(nil), board.AllMoves[:]...)
	}
	return append([]board.Move(nil), moves[:n]...)
}

// expand materializes a node's children, if it has not been expanded
// already. A resolved node (AwaitingOpponents == false) expands into one
// child per reasonable move for the viewpoint snake. An awaiting-opponents
// node expands into one child per combination of reasonable moves across
// every other alive snake, each child's board resolved by board.Apply.
func expand(arena *Arena, n *Node, viewpointIdx int) {
	n.expandOnce.Do(func() {
		if n.Board.IsOver() {
			n.terminal = true
			return
		}

		if !n.AwaitingOpponents {
			for _, mv := range reasonableMoves(n.Board, viewpointIdx) {
				child := arena.New()
				child.Parent = n
				child.Board = n.Board
				child.AwaitingOpponents = true
				child.Move = mv
				n.children = append(n.children, child)
			}
			return
		}

		opponentIdx := make([]int, 0, board.MaxSnakes)
		opponentMoves := make([][]board.Move, 0, board.MaxSnakes)
		for i := 0; i < n.Board.NumSnakes; i++ {
			if i == viewpointIdx || !n.Board.Snakes[i].Alive {
				continue
			}
			opponentIdx = append(opponentIdx, i)
			opponentMoves = append(opponentMoves, reasonableMoves(n.Board, i))
		}

		viewpointSnakeID := n.Board.Snakes[viewpointIdx].ID
		for _, combo := range comboProduct(opponentMoves) {
			var a board.Action
			a.Set(viewpointSnakeID, n.Move)
			for i, idx := range opponentIdx {
				a.Set(n.Board.Snakes[idx].ID, combo[i])
			}

			next, err := n.Board.Apply(a)
			if err != nil {
				continue
			}

			child := arena.New()
			child.Parent = n
			child.Board = next
			child.AwaitingOpponents = false
			n.children = append(n.children, child)
		}

		if len(n.children) == 0 {
			// Every Apply above returned an error (with no alive opponent,
			// comboProduct still yields one empty combination, so that case
			// is handled above): try the viewpoint's move alone, and leave
			// the node without children if that fails too.
			var a board.Action
			a.Set(viewpointSnakeID, n.Move)
			if next, err := n.Board.Apply(a); err == nil {
				child := arena.New()
				child.Parent = n
				child.Board = next
				n.children = append(n.children, child)
			}
		}
	})
}

// comboProduct returns the Cartesian product of per-snake move choices.
func comboProduct(choices [][]board.Move) [][]board.Move {
	if len(choices) == 0 {
		return [][]board.Move{{}}
	}
	rest := comboProduct(choices[1:])
	out := make([][]board.Move, 0, len(choices[0])*len(rest))
	for _, mv := range choices[0] {
		for _, tail := range rest {
			combo := make([]board.Move, 0, len(tail)+1)
			combo = append(combo, mv)
			combo = append(combo, tail...)
			out = append(out, combo)
		}
	}
	return out
}
