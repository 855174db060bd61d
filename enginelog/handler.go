// Package enginelog provides a small structured-logging slog.Handler for
// decision-scoped telemetry (game id, turn, algorithm, depth reached,
// iterations run), writing JSON lines to an *os.File (os.Stderr by default)
// with no dependency beyond the standard library.
package enginelog

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// Handler writes one JSON object per log record, merging in any attributes
// attached via WithAttrs so callers can scope a logger to one decision
// (game id, turn, algorithm) and have every subsequent record carry them.
type Handler struct {
	writer     *os.File
	level      slog.Level
	extraAttrs map[string]any
}

// NewHandler returns a Handler writing to w at the given minimum level. A
// nil w defaults to os.Stderr.
func NewHandler(w *os.File, level slog.Level) *Handler {
	if w == nil {
		w = os.Stderr
	}
	return &Handler{writer: w, level: level}
}

// Enabled reports whether level is at or above the handler's minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes one JSON-encoded log entry.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	entry := map[string]any{
		"level":   r.Level.String(),
		"message": r.Message,
		"time":    time.Now().Format(time.RFC3339Nano),
	}
	for k, v := range h.extraAttrs {
		entry[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.writer).Encode(entry)
}

// WithAttrs returns a handler that merges attrs into every future record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.extraAttrs = make(map[string]any, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		next.extraAttrs[k] = v
	}
	for _, a := range attrs {
		next.extraAttrs[a.Key] = a.Value.Any()
	}
	return &next
}

// WithGroup is a no-op: entries are flattened rather than nested, matching
// the rest of this handler's flat JSON shape.
func (h *Handler) WithGroup(_ string) slog.Handler {
	return h
}
