package board

import "errors"

// ErrInvalidAction is returned when Apply is given an action that omits a
// live snake or names one that is not alive.
var ErrInvalidAction = errors.New("board: invalid action")

// ErrOutOfBounds names a cell that lies off a non-wrapping board. No
// function in this package returns it: Neighbors and PossibleMoves leave
// off-board cells out, and Apply eliminates a snake whose move leaves the
// board.
var ErrOutOfBounds = errors.New("board: out of bounds")

// ErrCapacityExceeded is returned by AddSnake when the board already holds
// MaxSnakes snakes or the body is longer than MaxBodyLen. AddFood and
// AddHazard do not return it: they ignore cells beyond MaxFood and
// MaxHazards.
var ErrCapacityExceeded = errors.New("board: capacity exceeded")
