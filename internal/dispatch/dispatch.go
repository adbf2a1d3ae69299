// Package dispatch implements the explicit action registry that replaces
// reflective method dispatch (§9 redesign: "Reflective dispatch →
// explicit registry"). A handler registers a table of action name to
// declared parameter names plus an invoker function; Dispatch consults
// that table instead of introspecting a handler object.
package dispatch

import (
	"fmt"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

// Action is one registered operation: its declared parameter names, in
// order, and the function that executes it given a map of argument
// values keyed by those names.
type Action struct {
	Params []string
	Invoke func(args map[string]any) (result.Result, error)
}

// Registry maps action name to Action, the Go-native analogue of
// getattr(handler, action_name) plus its introspected signature.
type Registry map[string]Action

// Dispatch looks up request["action"] in registry and invokes it,
// validating that every declared parameter is present. Codes match
// §4.7: 450 missing action, 451 unknown action, 452 missing parameter,
// 455 handler error or panic.
func Dispatch(registry Registry, request map[string]any) result.Result {
	rawAction, ok := request["action"]
	if !ok {
		return result.Err(450, "request envelope missing required key \"action\"")
	}

	actionName, ok := rawAction.(string)
	if !ok || actionName == "" {
		return result.Err(450, "request envelope \"action\" must be a non-empty string")
	}

	action, ok := registry[actionName]
	if !ok {
		return result.Err(451, "unknown action \""+actionName+"\"")
	}

	for _, param := range action.Params {
		if _, ok := request[param]; !ok {
			return result.Err(452, "missing parameter \""+param+"\" for action \""+actionName+"\"")
		}
	}

	return invokeSafely(action, request)
}

// invokeSafely calls action.Invoke, converting both a returned error and
// a recovered panic into status 455, matching the Consumer/RPCServer
// treatment of handler exceptions.
func invokeSafely(action Action, request map[string]any) (r result.Result) {
	defer func() {
		if p := recover(); p != nil {
			r = result.Err(455, errorMessage(p))
		}
	}()

	res, err := action.Invoke(request)
	if err != nil {
		return result.Err(455, err.Error())
	}
	return res
}

func errorMessage(p any) string {
	if err, ok := p.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("handler panicked: %v", p)
}
