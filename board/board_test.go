package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_WrapVsBounded(t *testing.T) {
	cases := []struct {
		Description string
		Wrap        bool
		WantAlive   bool
		WantHead    Point
	}{
		{
			Description: "wrapping board wraps off the left edge",
			Wrap:        true,
			WantAlive:   true,
			WantHead:    Point{X: 10, Y: 5},
		},
		{
			Description: "non-wrapping board dies off the left edge",
			Wrap:        false,
			WantAlive:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Description, func(t *testing.T) {
			b := New(11, 11, tc.Wrap, 0)
			require.NoError(t, b.AddSnake(0, 100, []Point{{X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}}))

			var a Action
			a.Set(0, Left)

			next, err := b.Apply(a)
			require.NoError(t, err)

			idx := next.SnakeByID(0)
			require.GreaterOrEqual(t, idx, 0)
			assert.Equal(t, tc.WantAlive, next.Snakes[idx].Alive)
			if tc.WantAlive {
				x, y := next.XY(next.Snakes[idx].Body[0])
				assert.Equal(t, tc.WantHead, Point{X: x, Y: y})
			}
		})
	}
}

func TestApply_FoodGrowthAndHealthReset(t *testing.T) {
	b := New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 30, []Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}))
	b.AddFood(Point{X: 1, Y: 2})

	var a Action
	a.Set(0, Up)

	next, err := b.Apply(a)
	require.NoError(t, err)

	idx := next.SnakeByID(0)
	s := next.Snakes[idx]
	assert.True(t, s.Alive)
	assert.Equal(t, 100, s.Health)
	assert.Equal(t, 4, s.BodyLen)
	assert.False(t, next.IsFood(next.CellIndex(1, 2)))
}

func TestApply_HazardDamageKills(t *testing.T) {
	b := New(5, 5, false, 14)
	require.NoError(t, b.AddSnake(0, 15, []Point{{X: 2, Y: 2}, {X: 2, Y: 1}}))
	b.AddHazard(Point{X: 2, Y: 3})

	var a Action
	a.Set(0, Up)

	next, err := b.Apply(a)
	require.NoError(t, err)

	idx := next.SnakeByID(0)
	assert.False(t, next.Snakes[idx].Alive)
	assert.LessOrEqual(t, next.Snakes[idx].Health, 0)
}

func TestApply_HeadToHead(t *testing.T) {
	cases := []struct {
		Description   string
		LenA, LenB    int
		WantAAlive    bool
		WantBAlive    bool
	}{
		{"longer snake survives a head-to-head", 4, 3, true, false},
		{"equal length snakes both die in a head-to-head", 3, 3, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.Description, func(t *testing.T) {
			b := New(7, 7, false, 0)
			bodyA := make([]Point, tc.LenA)
			for i := range bodyA {
				bodyA[i] = Point{X: 1, Y: 3 + i}
			}
			bodyB := make([]Point, tc.LenB)
			for i := range bodyB {
				bodyB[i] = Point{X: 3, Y: 3 + i}
			}
			require.NoError(t, b.AddSnake(0, 100, bodyA))
			require.NoError(t, b.AddSnake(1, 100, bodyB))

			var a Action
			a.Set(0, Right)
			a.Set(1, Left)

			next, err := b.Apply(a)
			require.NoError(t, err)

			assert.Equal(t, tc.WantAAlive, next.Snakes[next.SnakeByID(0)].Alive)
			assert.Equal(t, tc.WantBAlive, next.Snakes[next.SnakeByID(1)].Alive)
		})
	}
}

func TestApply_NoMutation(t *testing.T) {
	b := New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []Point{{X: 2, Y: 2}, {X: 2, Y: 1}}))
	before := b

	var a Action
	a.Set(0, Up)
	_, err := b.Apply(a)
	require.NoError(t, err)

	assert.Equal(t, before, b)
}

func TestApply_DeterministicAndFingerprintStable(t *testing.T) {
	b := New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []Point{{X: 2, Y: 2}, {X: 2, Y: 1}}))
	b.AddFood(Point{X: 4, Y: 4})

	var a Action
	a.Set(0, Up)

	first, err := b.Apply(a)
	require.NoError(t, err)
	second, err := b.Apply(a)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
}

func TestPossibleMoves_ExcludesNeckOnly(t *testing.T) {
	b := New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []Point{{X: 2, Y: 2}, {X: 2, Y: 1}}))

	moves, n := b.PossibleMoves(0)
	got := moves[:n]

	assert.Contains(t, got, Up)
	assert.Contains(t, got, Left)
	assert.Contains(t, got, Right)
	assert.NotContains(t, got, Down) // Down steps into the neck
}

func TestIsOverAndWinner(t *testing.T) {
	b := New(5, 5, false, 0)
	require.NoError(t, b.AddSnake(0, 100, []Point{{X: 1, Y: 1}}))
	require.NoError(t, b.AddSnake(1, 100, []Point{{X: 0, Y: 3}}))

	var a Action
	a.Set(0, Up)
	a.Set(1, Left) // walks off the edge and dies

	next, err := b.Apply(a)
	require.NoError(t, err)

	assert.True(t, next.IsOver())
	winner, ok := next.Winner()
	assert.True(t, ok)
	assert.Equal(t, 0, winner)
}
