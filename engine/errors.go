package engine

import "errors"

// ErrNoMove is returned if a search completed (or was cancelled) without
// producing any move at all, e.g. the viewpoint snake was never on the
// board to begin with.
var ErrNoMove = errors.New("engine: search produced no move")
