package mcts

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/serpentengine/board"
)

func TestSearch_RootProducesAMove(t *testing.T) {
	b := board.New(7, 7, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 3, Y: 3}, {X: 3, Y: 2}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 5, Y: 5}, {X: 5, Y: 4}}))
	b.Viewpoint = 0

	root := runFixedIterations(t, b, 300)

	_, ok := BestMove(root)
	assert.True(t, ok)
}

func TestSearch_RootCorrectnessBetweenSafeAndLosingChild(t *testing.T) {
	// The opponent's old head always becomes its new tail after one move
	// (body length unchanged, no food eaten), so (2,3) is guaranteed
	// occupied after the round regardless of which reasonable move the
	// opponent makes. Up walks the viewpoint straight into that cell and it
	// dies whatever the opponent does: a loss, or a tie when the opponent
	// turns Down into the viewpoint's old head. Left and Down lead to open
	// space: safe.
	b := board.New(9, 9, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 2, Y: 2}, {X: 3, Y: 2}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 2, Y: 3}, {X: 2, Y: 4}}))
	b.Viewpoint = 0

	root := runFixedIterations(t, b, 400)
	require.Len(t, root.children, 3, "Right is the neck; Up, Down, Left remain")

	var losing, other *Node
	for _, c := range root.children {
		if c.Move == board.Up {
			losing = c
		} else {
			other = c
		}
	}
	require.NotNil(t, losing)
	require.NotNil(t, other)
	assert.Greater(t, other.Average(), losing.Average(), "the non-suicidal move must average strictly higher")
}

func TestSearch_NoIterationsWhenAlreadyCancelled(t *testing.T) {
	b := board.New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 1, Y: 1}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 3, Y: 3}}))
	b.Viewpoint = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Search(ctx, b, Options{})
	assert.ErrorIs(t, err, ErrNoIterations)
}

func TestSearch_ViewpointAlreadyEliminatedIsImmediatelyTerminal(t *testing.T) {
	b := board.New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 1, Y: 1}}))
	b.Snakes[0].Alive = false
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 3, Y: 3}}))
	b.Viewpoint = 0

	root, err := Search(context.Background(), b, Options{})
	require.NoError(t, err)

	_, ok := BestMove(root)
	assert.False(t, ok)
}

func runFixedIterations(t *testing.T, b board.Board, n int) *Node {
	t.Helper()
	opts := Options{Rand: rand.New(rand.NewSource(7))}.withDefaults()

	viewpointIdx := b.SnakeByID(b.Viewpoint)
	arena := NewArena()
	root := arena.New()
	root.Board = b
	require.GreaterOrEqual(t, viewpointIdx, 0)

	for i := int64(1); i <= int64(n); i++ {
		runIteration(context.Background(), arena, root, viewpointIdx, b.Viewpoint, opts, i)
	}
	return root
}
