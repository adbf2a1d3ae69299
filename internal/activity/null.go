package activity

import "github.com/cwru-rcci/metarootbus/internal/result"

// Null is the no-op journal selected when ACTIVITY_STREAM_CLASS is
// $NONE.
type Null struct{}

// Record does nothing.
func (Null) Record(actionID string, params any, res result.Result) {}

// Close does nothing.
func (Null) Close() error { return nil }
