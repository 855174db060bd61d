package board

// Action is a fixed-capacity snake id -> Move mapping for one simultaneous
// turn. Snake ids are the small dense integers used to index Board.Snakes,
// so Action stores moves directly in an array keyed by id.
type Action struct {
	moves [MaxSnakes]Move
	set   [MaxSnakes]bool
}

// Set records the move chosen for the given snake id.
func (a *Action) Set(snakeID int, m Move) {
	a.moves[snakeID] = m
	a.set[snakeID] = true
}

// Get reports the move recorded for snakeID, if any.
func (a Action) Get(snakeID int) (Move, bool) {
	return a.moves[snakeID], a.set[snakeID]
}
