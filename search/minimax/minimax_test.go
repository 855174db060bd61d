package minimax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/serpentengine/board"
	"github.com/brensch/serpentengine/score"
)

func TestSearch_ForcedEscape(t *testing.T) {
	b := board.New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 2, Y: 3}, {X: 2, Y: 4}}))
	require.NoError(t, b.AddSnake(2, 100, []board.Point{{X: 1, Y: 2}, {X: 1, Y: 1}}))
	b.Viewpoint = 0

	players := []int{0, 1, 2}
	result, err := Search(context.Background(), b, players, 2*len(players), score.AreaControlEval, BestFirst, nil, nil)
	require.NoError(t, err)

	mv, ok := result.BestMove()
	require.True(t, ok)
	assert.Equal(t, board.Down, mv, "Up and Left walk into a body cell the blocking snake cannot vacate")
}

func TestSearch_AvoidsLosingMoveAgainstParanoidOpponent(t *testing.T) {
	// Viewpoint's neck is Down, leaving Up, Left and Right. Right runs
	// straight into the opponent's current head, a cell that stays part of
	// the opponent's body after the round whichever move it makes (if it
	// turns Left into the viewpoint's old head, both snakes die). Against a
	// paranoid opponent Right is therefore a loss, while Up and Left lead
	// to open space, so the search must not pick Right.
	b := board.New(7, 7, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 2, Y: 2}, {X: 2, Y: 1}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 3, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 1}}))
	b.Viewpoint = 0

	players := []int{0, 1}
	result, err := Search(context.Background(), b, players, 2*len(players), score.AreaControlEval, BestFirst, nil, nil)
	require.NoError(t, err)

	mv, ok := result.BestMove()
	require.True(t, ok)
	assert.NotEqual(t, board.Right, mv, "the opponent's old head stays in its body, so walking into it scores as a loss")
}

func TestSearch_DeterministicGivenSameInputs(t *testing.T) {
	b := board.New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 1, Y: 1}, {X: 1, Y: 0}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 3, Y: 3}, {X: 3, Y: 4}}))
	b.Viewpoint = 0

	players := []int{0, 1}
	first, err := Search(context.Background(), b, players, 4, score.AreaControlEval, BestFirst, nil, nil)
	require.NoError(t, err)
	second, err := Search(context.Background(), b, players, 4, score.AreaControlEval, BestFirst, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Score(), second.Score())
	firstMove, _ := first.BestMove()
	secondMove, _ := second.BestMove()
	assert.Equal(t, firstMove, secondMove)
}

func TestSearch_CancellationAbortsEarly(t *testing.T) {
	b := board.New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []board.Point{{X: 1, Y: 1}}))
	require.NoError(t, b.AddSnake(1, 100, []board.Point{{X: 3, Y: 3}}))
	b.Viewpoint = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	players := []int{0, 1}
	_, err := Search(ctx, b, players, 8, score.AreaControlEval, BestFirst, nil, nil)
	assert.ErrorIs(t, err, ErrAbortedEarly)
}

func TestBestFirstOrder_ReusesPreviousRanking(t *testing.T) {
	previous := &Return[float64]{
		Options: []Option[float64]{
			{Move: board.Left, Child: Return[float64]{}},
			{Move: board.Up, Child: Return[float64]{}},
		},
	}
	ordered := bestFirstOrder([]board.Move{board.Up, board.Down, board.Left}, previous)
	assert.Equal(t, []board.Move{board.Left, board.Up, board.Down}, ordered)
}
