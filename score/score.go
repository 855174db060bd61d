// Package score implements the totally ordered Score sum type and the
// terminal/depth "wrapping" layer that sits between a user-supplied static
// evaluator and the search engines, generic over any totally ordered user
// score type.
package score

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/brensch/serpentengine/board"
)

type tag uint8

const (
	loseTag tag = iota
	tieTag
	scoredTag
	winTag
)

// Score is the four-variant sum type Lose(depth) < Tie(depth) < Scored(v) <
// Win(depth), with Win depth compared in reverse (shallower wins rank
// higher) and Lose/Tie depth compared directly (later ones rank higher).
type Score[S constraints.Ordered] struct {
	tag   tag
	depth int
	value S
}

// Lose builds a loss recorded at the given search depth.
func Lose[S constraints.Ordered](depth int) Score[S] { return Score[S]{tag: loseTag, depth: depth} }

// Tie builds a tie recorded at the given search depth.
func Tie[S constraints.Ordered](depth int) Score[S] { return Score[S]{tag: tieTag, depth: depth} }

// Scored wraps a non-terminal static evaluation value.
func Scored[S constraints.Ordered](value S) Score[S] { return Score[S]{tag: scoredTag, value: value} }

// Win builds a win recorded at the given search depth.
func Win[S constraints.Ordered](depth int) Score[S] { return Score[S]{tag: winTag, depth: depth} }

// BestPossible is a sentinel no in-game score can exceed; used to seed
// alpha-beta bounds.
func BestPossible[S constraints.Ordered]() Score[S] { return Win[S](math.MinInt) }

// WorstPossible is a sentinel no in-game score can fall below.
func WorstPossible[S constraints.Ordered]() Score[S] { return Lose[S](math.MinInt) }

// IsTerminal reports whether the score is a Win, Lose, or Tie (as opposed to
// a Scored leaf).
func (s Score[S]) IsTerminal() bool { return s.tag != scoredTag }

// Depth returns the recorded depth for Win/Lose/Tie scores.
func (s Score[S]) Depth() (int, bool) {
	if s.tag == scoredTag {
		return 0, false
	}
	return s.depth, true
}

// Value returns the wrapped static evaluation for Scored scores.
func (s Score[S]) Value() (S, bool) {
	if s.tag != scoredTag {
		var zero S
		return zero, false
	}
	return s.value, true
}

func cmpOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than
// b, per the ordering in the package doc.
func Compare[S constraints.Ordered](a, b Score[S]) int {
	if a.tag != b.tag {
		return cmpOrdered(a.tag, b.tag)
	}
	switch a.tag {
	case winTag:
		// Shallower wins rank higher: reverse the depth comparison.
		return cmpOrdered(b.depth, a.depth)
	case loseTag, tieTag:
		return cmpOrdered(a.depth, b.depth)
	default:
		return cmpOrdered(a.value, b.value)
	}
}

// Less reports whether a sorts strictly before b.
func Less[S constraints.Ordered](a, b Score[S]) bool { return Compare(a, b) < 0 }

// Eval is a user-supplied static evaluation capability: board -> UserScore.
type Eval[S constraints.Ordered] func(b board.Board) S

// Wrap applies the terminal/depth layer described in SPEC_FULL.md §4.2: it
// checks game-over and round-boundary conditions before falling through to
// the user evaluator. The second return value is false when neither
// condition applies, meaning the caller must keep searching.
func Wrap[S constraints.Ordered](b board.Board, depth, maxDepth, numPlayers int, eval Eval[S]) (Score[S], bool) {
	viewpointIdx := b.SnakeByID(b.Viewpoint)
	if viewpointIdx < 0 || !b.IsAlive(viewpointIdx) {
		if b.IsOver() {
			if _, ok := b.Winner(); !ok {
				return Tie[S](depth), true
			}
		}
		return Lose[S](depth), true
	}
	if b.IsOver() {
		if winner, ok := b.Winner(); ok && winner == b.Viewpoint {
			return Win[S](depth), true
		}
		return Lose[S](depth), true
	}
	if depth == maxDepth && depth%numPlayers == 0 {
		return Scored[S](eval(b)), true
	}
	var zero Score[S]
	return zero, false
}
