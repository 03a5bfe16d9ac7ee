// Package stdlib provides the language's one native binding: `clock`.
// The language's own standard library is deliberately limited to this
// single primitive; everything else a complete repo needs (logging, CLI,
// REPL editing, tests) lives outside the evaluable language surface.
package stdlib

import (
	"time"

	"vellum/callable"
	"vellum/environment"
	"vellum/object"
)

// Register binds every native function into env. Called once, against
// the global environment, when an Evaluator is constructed.
func Register(env *environment.Environment) {
	env.Define("clock", &callable.NativeFunction{
		FnName:  "clock",
		FnArity: 0,
		Impl: func(args []object.Value) (object.Value, error) {
			return object.Number{Value: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
}
