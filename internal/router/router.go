package router

import (
	"fmt"
	"strings"

	"github.com/cwru-rcci/metarootbus/internal/activity"
	"github.com/cwru-rcci/metarootbus/internal/reactions"
	"github.com/cwru-rcci/metarootbus/internal/result"
	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

const logSubsystem = "router"

// readOnlyBlockedSubstrings are the literal method-name substrings that
// trip the read-only gate. Preserved verbatim per the Open Question in
// §9: a method named e.g. "resetCache" would be blocked too, which is
// documented rather than fixed.
var readOnlyBlockedSubstrings = []string{"add", "delete", "associate", "update", "set"}

// Router fans an action out to every configured Manager that implements
// it, aggregates per-manager Results by summing status, journals every
// call, and drives Reactions.
type Router struct {
	managers  []Manager
	journal   activity.Journal
	reactions reactions.Reactions
	readOnly  bool
}

// New instantiates one Manager per hook key via the compile-time
// constructor registry, initializes each, and rejects any that fails to
// construct or initialize. If fewer managers were built than hooks
// configured, New returns an error — fatal at startup per §4.8 and the
// Open Question's stricter resolution (absence of Initialize/Finalize is
// fatal, and since Go's Manager interface requires both methods to
// compile, the compiler itself enforces that half of the contract).
func New(hooks []string, journal activity.Journal, react reactions.Reactions, readOnly bool) (*Router, error) {
	managers := make([]Manager, 0, len(hooks))

	for _, hook := range hooks {
		ctor, ok := lookupConstructor(hook)
		if !ok {
			logging.Error(logSubsystem, nil, "no manager registered for hook %q", hook)
			continue
		}

		manager := ctor()
		if err := manager.Initialize(); err != nil {
			logging.Error(logSubsystem, err, "failed to initialize manager for hook %q", hook)
			continue
		}

		managers = append(managers, manager)
		logging.Info(logSubsystem, "loaded manager for hook %q", hook)
	}

	if len(managers) < len(hooks) {
		return nil, fmt.Errorf("router: %d of %d hooks initialized; refusing to run with reduced set", len(managers), len(hooks))
	}

	if journal == nil {
		journal = activity.Null{}
	}
	if react == nil {
		react = reactions.Noop{}
	}

	return &Router{managers: managers, journal: journal, reactions: react, readOnly: readOnly}, nil
}

// Initialize is a no-op: managers are already initialized in New, but the
// Router itself behaves like a Manager so it can run as a Consumer or
// RPCServer Handler's owning object.
func (r *Router) Initialize() error { return nil }

// Finalize finalizes every manager, in configured order.
func (r *Router) Finalize() error {
	var firstErr error
	for _, m := range r.managers {
		if err := m.Finalize(); err != nil {
			logging.Error(logSubsystem, err, "manager %s failed to finalize", m.ClassName())
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// safeCall is the fan-out core described in §4.8.
func (r *Router) safeCall(method string, args []any, targets any) result.Result {
	if r.readOnly && isWriteMethod(method) {
		res := result.Err(470, "Read-only operation is enabled, but write operation requested")
		r.journal.Record(method+":any", args, res)
		return res
	}

	status := 0
	responses := map[string]any{}
	priorCount := 0

	for _, manager := range r.managers {
		if !targeted(manager.ClassName(), targets) {
			continue
		}

		invoke, ok := manager.Methods()[method]
		if !ok {
			logging.Debug(logSubsystem, "method %s not defined for manager %s", method, manager.ClassName())
			continue
		}

		res, err := invoke(args)
		if err != nil {
			res = result.Err(455, err.Error())
		}

		status += res.Status
		responses[manager.ClassName()] = res.ToWire()
		r.journal.Record(method+":"+manager.ClassName(), args, res)

		priorCount += r.reactions.OccurInResponseTo(manager.ClassName(), method, args, res, priorCount)
	}

	return result.Result{Status: status, Response: responses}
}

// isWriteMethod applies the literal substring rule from §4.8/§9.
func isWriteMethod(method string) bool {
	for _, sub := range readOnlyBlockedSubstrings {
		if strings.Contains(method, sub) {
			return true
		}
	}
	return false
}

// targeted reports whether className passes the managers filter: either
// the literal string "any" or a []string/[]any of class names.
func targeted(className string, targets any) bool {
	if targets == nil {
		return true
	}
	if s, ok := targets.(string); ok {
		return s == "any"
	}

	switch list := targets.(type) {
	case []string:
		for _, name := range list {
			if name == className {
				return true
			}
		}
		return false
	case []any:
		for _, name := range list {
			if s, ok := name.(string); ok && s == className {
				return true
			}
		}
		return false
	default:
		return false
	}
}
