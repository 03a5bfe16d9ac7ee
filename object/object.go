// Package object defines the tagged Value domain vellum programs operate
// over: Null, Number, Bool, String, Array, and Callable.
package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type identifies which of the six Value variants an object.Value is.
type Type string

const (
	NullType     Type = "null"
	NumberType   Type = "number"
	BoolType     Type = "bool"
	StringType   Type = "string"
	ArrayType    Type = "array"
	CallableType Type = "callable"
)

// Value is the interface every runtime value satisfies.
type Value interface {
	Type() Type
	// String renders the value the way `print` renders it.
	String() string
	// Truthy implements the truthiness projection used by control
	// conditions.
	Truthy() bool
	// Equal implements structural, variant-respecting equality.
	// Two values of different Type are never equal.
	Equal(other Value) bool
}

// Null is the single absence/uninitialized value.
type Null struct{}

func (Null) Type() Type         { return NullType }
func (Null) String() string     { return "null" }
func (Null) Truthy() bool       { return false }
func (Null) Equal(o Value) bool { _, ok := o.(Null); return ok }

// Number wraps an IEEE-754 double.
type Number struct {
	Value float64
}

func (Number) Type() Type { return NumberType }

// String renders with the host's default double formatting, matching the
// reference's printf("%f") style: integers render with a trailing
// ".000000".
func (n Number) String() string { return strconv.FormatFloat(n.Value, 'f', 6, 64) }

func (n Number) Truthy() bool { return n.Value != 0 }

func (n Number) Equal(o Value) bool {
	other, ok := o.(Number)
	return ok && other.Value == n.Value
}

// IsInteger reports whether the number's stored double is integer-valued,
// used by the `%` operator and array indexing.
func (n Number) IsInteger() bool {
	return !math.IsInf(n.Value, 0) && !math.IsNaN(n.Value) && math.Trunc(n.Value) == n.Value
}

// Bool wraps a boolean.
type Bool struct {
	Value bool
}

func (Bool) Type() Type { return BoolType }

func (b Bool) String() string {
	if b.Value {
		return "True"
	}
	return "False"
}

func (b Bool) Truthy() bool { return b.Value }

func (b Bool) Equal(o Value) bool {
	other, ok := o.(Bool)
	return ok && other.Value == b.Value
}

// String is arbitrary text with no embedded-NUL restriction.
type String struct {
	Value string
}

func (String) Type() Type       { return StringType }
func (s String) String() string { return s.Value }
func (s String) Truthy() bool   { return s.Value != "" }

func (s String) Equal(o Value) bool {
	other, ok := o.(String)
	return ok && other.Value == s.Value
}

// Array is an ordered, mutable-in-place sequence of Values.
type Array struct {
	Elements []Value
}

func (Array) Type() Type { return ArrayType }

func (a Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, elem := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (a Array) Truthy() bool { return len(a.Elements) > 0 }

func (a Array) Equal(o Value) bool {
	other, ok := o.(Array)
	if !ok || len(other.Elements) != len(a.Elements) {
		return false
	}
	for i, elem := range a.Elements {
		if !elem.Equal(other.Elements[i]) {
			return false
		}
	}
	return true
}

// Callable is implemented by both UserFunction (package callable) and any
// native function. It lives here, rather than as a concrete struct, so that
// this package never needs to import the ast/environment packages that a
// user-defined function closes over — breaking what would otherwise be an
// object→ast→object import cycle. Callables compare by identity: concrete
// implementations are always used behind a pointer, so Equal is just
// pointer comparison of the two Values.
type Callable interface {
	Value
	Arity() int
	// Name is used by the printable rendering (<function NAME> /
	// <native function NAME>).
	Name() string
}

// NewRuntimeError is a convenience constructor for an fmt.Errorf-formatted
// error. The evaluator does not call it: its runtime diagnostics are
// eval.RuntimeError values.
func NewRuntimeError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
