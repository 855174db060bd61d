package mcts

import (
	"math/rand"

	"github.com/brensch/serpentengine/board"
	"github.com/brensch/serpentengine/score"
)

const (
	winScore  = 1.0
	loseScore = -1.0
	tieScore  = -0.25
)

// rollout plays random reasonable moves from b for up to maxSteps rounds or
// until the game ends, then scores the result from the viewpoint snake's
// perspective: a win is +1, a loss is -1, a tie is -0.25, and a position
// still in progress when the step budget runs out is scored by its flood
// fill area fraction in [0, 1]. If forcedMove is non-nil, the viewpoint
// snake is made to play it on the first round instead of a random choice,
// so a rollout launched from an own-move-chosen (opponents not yet
// resolved) node still honors the move that node committed to.
func rollout(b board.Board, viewpointID int, forcedMove *board.Move, maxSteps int, rng *rand.Rand) float64 {
	for step := 0; step < maxSteps && !b.IsOver(); step++ {
		var a board.Action
		for i := 0; i < b.NumSnakes; i++ {
			if !b.Snakes[i].Alive {
				continue
			}
			if step == 0 && forcedMove != nil && b.Snakes[i].ID == viewpointID {
				a.Set(b.Snakes[i].ID, *forcedMove)
				continue
			}
			moves := reasonableMoves(b, i)
			a.Set(b.Snakes[i].ID, moves[rng.Intn(len(moves))])
		}
		next, err := b.Apply(a)
		if err != nil {
			break
		}
		b = next
	}

	if b.IsOver() {
		winner, ok := b.Winner()
		if !ok {
			return tieScore
		}
		if winner == viewpointID {
			return winScore
		}
		return loseScore
	}

	return score.AreaFraction(b)
}
