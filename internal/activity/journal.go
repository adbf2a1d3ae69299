// Package activity implements the append-only activity journal: one row
// per Router call, keyed by event time, with level inferred from the
// Result's status.
package activity

import (
	"github.com/cwru-rcci/metarootbus/internal/result"
)

// Level mirrors the three-value severity from the activity event tuple.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
)

// Journal records one call per invocation. Implementations must never
// propagate I/O errors to the caller; Record swallows them after logging.
type Journal interface {
	Record(actionID string, params any, res result.Result)
	Close() error
}

// levelFor infers the journal level from a Result the way the Router
// does: any error status is ERROR, success is INFO. There is no WARN
// producer in the core today, but the level space is kept for parity
// with the activity event tuple and for journal implementations that
// want to distinguish partial aggregate failures later.
func levelFor(res result.Result) Level {
	if res.IsError() {
		return LevelError
	}
	return LevelInfo
}
