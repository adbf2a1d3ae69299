// Package router implements the fan-out Router: the handler that
// distributes a single administrative action across an ordered set of
// backend Manager plug-ins, aggregates their Results, journals every
// call, and drives post-call reactions.
package router

import (
	"github.com/cwru-rcci/metarootbus/internal/result"
)

// MethodTable maps a Router method name (e.g. "addGroup") to the
// function that implements it for one Manager. This is the Go-native
// analogue of getattr(manager, method_name): since Go has no runtime
// method-by-string lookup, each Manager builds its own small registry at
// construction time instead of being introspected.
type MethodTable map[string]func(args []any) (result.Result, error)

// Manager is a backend plug-in wrapping some external system (a
// scheduler, a directory service, ...). Initialize and Finalize bracket
// its lifecycle; a Manager that cannot be constructed and initialized is
// dropped at Router startup.
type Manager interface {
	ClassName() string
	Initialize() error
	Finalize() error
	Methods() MethodTable
}

// Constructor builds a fresh, uninitialized Manager for one HOOKS entry.
type Constructor func() Manager

// constructors is the compile-time registry of named Manager
// constructors keyed by the config string (§9: "Dynamic class loading
// from a string → compile-time registry of named constructors").
var constructors = map[string]Constructor{}

// RegisterManager adds key to the compile-time constructor registry.
// Real backend managers call this from an init() in their own package;
// the two samples in this package register themselves the same way.
func RegisterManager(key string, ctor Constructor) {
	constructors[key] = ctor
}

// lookupConstructor returns the registered constructor for key, if any.
func lookupConstructor(key string) (Constructor, bool) {
	ctor, ok := constructors[key]
	return ctor, ok
}

// NewManager constructs a fresh, uninitialized Manager for key, if
// registered. Used by the genwrapper CLI to introspect a Manager's
// method table without the Router's lifecycle/fan-out machinery.
func NewManager(key string) (Manager, bool) {
	ctor, ok := lookupConstructor(key)
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// RegisteredManagers returns the registry keys of every compiled-in
// Manager constructor, for CLI introspection (e.g. `metarootbus managers`).
func RegisteredManagers() []string {
	keys := make([]string, 0, len(constructors))
	for k := range constructors {
		keys = append(keys, k)
	}
	return keys
}
