// Package callable holds the two concrete object.Callable implementations:
// UserFunction, a closure over a parsed function declaration, and
// NativeFunction, an opaque host-provided routine. It is kept separate
// from package object so that object never needs to import ast or
// environment, avoiding an object->ast->object import cycle.
package callable

import (
	"vellum/ast"
	"vellum/environment"
	"vellum/object"
)

// UserFunction is a function value created by a `function` declaration. It
// captures the environment active at declaration time by reference, not by
// snapshot, so mutations to variables in that environment after the
// function is created remain visible to calls made later.
type UserFunction struct {
	Declaration *ast.Function
	Closure     *environment.Environment
}

func (*UserFunction) Type() object.Type { return object.CallableType }

func (f *UserFunction) String() string {
	return "<function " + f.Declaration.Name + ">"
}

func (*UserFunction) Truthy() bool { return true }

func (f *UserFunction) Equal(o object.Value) bool {
	other, ok := o.(*UserFunction)
	return ok && other == f
}

func (f *UserFunction) Arity() int { return len(f.Declaration.Params) }

func (f *UserFunction) Name() string { return f.Declaration.Name }

// NativeImpl is the Go function backing a NativeFunction. args is already
// arity-checked by the evaluator before impl is invoked.
type NativeImpl func(args []object.Value) (object.Value, error)

// NativeFunction wraps a host-provided routine, e.g. the `clock` builtin.
type NativeFunction struct {
	FnName  string
	FnArity int
	Impl    NativeImpl
}

func (*NativeFunction) Type() object.Type { return object.CallableType }

func (f *NativeFunction) String() string {
	return "<native function " + f.FnName + ">"
}

func (*NativeFunction) Truthy() bool { return true }

func (f *NativeFunction) Equal(o object.Value) bool {
	other, ok := o.(*NativeFunction)
	return ok && other == f
}

func (f *NativeFunction) Arity() int { return f.FnArity }

func (f *NativeFunction) Name() string { return f.FnName }

var (
	_ object.Callable = (*UserFunction)(nil)
	_ object.Callable = (*NativeFunction)(nil)
)
