package score

import (
	"github.com/brensch/serpentengine/board"
)

// AreaControlEval is a flood-fill area control evaluator: it scores a board
// by the fraction of reachable cells the viewpoint snake would claim in a
// simultaneous flood fill from every snake's head, penalized when health is
// low and no food is nearby.
func AreaControlEval(b board.Board) float64 {
	owner := floodFillOwners(b)

	myIdx := b.SnakeByID(b.Viewpoint)
	total, mine := 0, 0
	for _, o := range owner {
		if o < 0 {
			continue
		}
		total++
		if o == myIdx {
			mine++
		}
	}

	area := 0.0
	if total > 0 {
		area = float64(mine) / float64(total)
	}

	return area + healthPenalty(b, myIdx)
}

// LengthDifferenceEval is a cheap alternate evaluator scoring purely on the
// viewpoint snake's length advantage over the longest opponent; useful for
// deep, fast searches where flood fill's per-node cost is unaffordable.
func LengthDifferenceEval(b board.Board) int {
	myIdx := b.SnakeByID(b.Viewpoint)
	if myIdx < 0 {
		return -1 << 30
	}
	myLen := b.Snakes[myIdx].BodyLen
	longestOpponent := 0
	for i := 0; i < b.NumSnakes; i++ {
		if i == myIdx || !b.Snakes[i].Alive {
			continue
		}
		if b.Snakes[i].BodyLen > longestOpponent {
			longestOpponent = b.Snakes[i].BodyLen
		}
	}
	return myLen - longestOpponent
}

// AreaFraction returns the viewpoint snake's share of contested cells from
// a simultaneous flood fill, with no health penalty applied: a pure
// in-progress position score in [0, 1], 0 when the viewpoint snake is not
// on the board.
func AreaFraction(b board.Board) float64 {
	owner := floodFillOwners(b)
	myIdx := b.SnakeByID(b.Viewpoint)
	total, mine := 0, 0
	for _, o := range owner {
		if o < 0 {
			continue
		}
		total++
		if o == myIdx {
			mine++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(mine) / float64(total)
}

// floodFillOwners returns, per cell index, the board slot index of the
// snake controlling it (-1 if unclaimed or occupied by a body segment other
// than a live snake's head, which its own snake claims).
func floodFillOwners(b board.Board) []int {
	numCells := b.Width * b.Height
	owner := make([]int, numCells)
	depthOf := make([]int, numCells)
	lengthOf := make([]int, numCells)
	for i := range owner {
		owner[i] = -1
	}

	type seed struct {
		cell   int32
		idx    int
		depth  int
		length int
	}

	queue := make([]seed, 0, numCells)
	for i := 0; i < b.NumSnakes; i++ {
		s := &b.Snakes[i]
		if !s.Alive {
			continue
		}
		head := s.Body[0]
		owner[head] = i
		depthOf[head] = 0
		lengthOf[head] = s.BodyLen
		queue = append(queue, seed{cell: head, idx: i, depth: 0, length: s.BodyLen})
	}

	for qi := 0; qi < len(queue); qi++ {
		cur := queue[qi]
		neighbors, n := b.Neighbors(cur.cell)
		for k := 0; k < n; k++ {
			next := neighbors[k]
			if b.IsBody(next) {
				continue
			}
			if owner[next] == -1 {
				owner[next] = cur.idx
				depthOf[next] = cur.depth + 1
				lengthOf[next] = cur.length
				queue = append(queue, seed{cell: next, idx: cur.idx, depth: cur.depth + 1, length: cur.length})
				continue
			}
			if depthOf[next] == cur.depth+1 && cur.length > lengthOf[next] {
				owner[next] = cur.idx
				lengthOf[next] = cur.length
			}
		}
	}

	return owner
}

const lowHealthThreshold = 25

func healthPenalty(b board.Board, idx int) float64 {
	if idx < 0 {
		return -1
	}
	s := &b.Snakes[idx]
	if s.Health >= lowHealthThreshold {
		return 0
	}
	dist, found := nearestFoodDistance(b, s.Body[0])
	severity := float64(lowHealthThreshold-s.Health) / float64(lowHealthThreshold)
	if !found {
		return -severity
	}
	norm := float64(b.Width + b.Height)
	if norm == 0 {
		return -severity
	}
	return -severity * (float64(dist) / norm)
}

func nearestFoodDistance(b board.Board, from int32) (int, bool) {
	if b.NumFood == 0 {
		return 0, false
	}
	fx, fy := b.XY(from)
	best := -1
	for i := 0; i < b.NumFood; i++ {
		x, y := b.XY(b.Food[i])
		d := abs(x-fx) + abs(y-fy)
		if best < 0 || d < best {
			best = d
		}
	}
	return best, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
