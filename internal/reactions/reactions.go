// Package reactions implements post-action side effects driven by a
// manager's per-call Result, e.g. operator notification email on error.
package reactions

import (
	"github.com/cwru-rcci/metarootbus/internal/result"
)

const logSubsystem = "reactions"

// Reactions fires side effects in response to a single manager's Result
// and reports how many it fired, which the Router feeds back in as
// priorCount on the next call so a reaction can throttle itself.
type Reactions interface {
	OccurInResponseTo(class, action string, payload any, res result.Result, priorCount int) int
}

// Noop never fires a reaction; used when REACTION_HANDLER selects no
// notification path.
type Noop struct{}

// OccurInResponseTo always returns 0.
func (Noop) OccurInResponseTo(class, action string, payload any, res result.Result, priorCount int) int {
	return 0
}
