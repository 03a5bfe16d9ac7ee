// Package eval walks a vellum AST against a lexically-scoped environment
// chain. `return` propagates through an explicit signal result carried
// alongside each statement's (signal, Value, error) return rather than
// exception-style unwinding, giving execStatement a distinguished
// Normal/Returning outcome instead of a special-cased error value.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"vellum/ast"
	"vellum/callable"
	"vellum/environment"
	"vellum/object"
	"vellum/stdlib"
)

// signal reports how a statement's execution completed.
type signal int

const (
	signalNone signal = iota
	signalReturn
)

// Evaluator holds the interpreter's mutable execution state: the global
// environment and the environment currently in scope.
type Evaluator struct {
	Globals *environment.Environment
	Env     *environment.Environment
	Writer  io.Writer
	Reader  *bufio.Reader
}

// New creates an Evaluator with a fresh global environment pre-populated
// with the language's sole native binding, `clock`.
func New() *Evaluator {
	globals := environment.New()
	stdlib.Register(globals)
	return &Evaluator{
		Globals: globals,
		Env:     globals,
		Writer:  os.Stdout,
		Reader:  bufio.NewReader(os.Stdin),
	}
}

// SetWriter redirects `print` output, used by tests to capture stdout.
func (e *Evaluator) SetWriter(w io.Writer) { e.Writer = w }

// SetReader replaces the evaluator's Reader. Native functions receive only
// their arguments, so no builtin reads from it.
func (e *Evaluator) SetReader(r io.Reader) { e.Reader = bufio.NewReader(r) }

// Run executes a top-level program. A Return signal escaping every
// enclosing call frame (i.e. `return` outside any function) is converted
// to a runtime error.
func (e *Evaluator) Run(program []ast.Statement) error {
	for _, stmt := range program {
		sig, _, err := e.execStatement(stmt)
		if err != nil {
			return err
		}
		if sig == signalReturn {
			return runtimeErrf(lineOf(stmt), "'return' outside of a function")
		}
	}
	return nil
}

func (e *Evaluator) execStatement(stmt ast.Statement) (signal, object.Value, error) {
	switch s := stmt.(type) {
	case *ast.Let:
		return e.execLet(s)
	case *ast.Print:
		return e.execPrint(s)
	case *ast.ExpressionStmt:
		_, err := e.evalExpression(s.Expr)
		return signalNone, nil, err
	case *ast.UpdateStmt:
		return signalNone, nil, e.execUpdateStmt(s)
	case *ast.AssignmentUpdateStmt:
		return signalNone, nil, e.execAssignmentUpdateStmt(s)
	case *ast.Block:
		return e.execBlock(s)
	case *ast.If:
		return e.execIf(s)
	case *ast.While:
		return e.execWhile(s)
	case *ast.Function:
		return signalNone, nil, e.execFunction(s)
	case *ast.Return:
		return e.execReturn(s)
	}
	return signalNone, nil, fmt.Errorf("eval: unhandled statement %T", stmt)
}

func (e *Evaluator) execLet(s *ast.Let) (signal, object.Value, error) {
	var val object.Value = object.Null{}
	if s.Initializer != nil {
		var err error
		val, err = e.evalExpression(s.Initializer)
		if err != nil {
			return signalNone, nil, err
		}
	}
	if redefined := e.Env.Define(s.Name, val); redefined {
		return signalNone, nil, runtimeErrf(s.Line, "'%s' is already defined in this scope", s.Name)
	}
	return signalNone, nil, nil
}

func (e *Evaluator) execPrint(s *ast.Print) (signal, object.Value, error) {
	val, err := e.evalExpression(s.Expr)
	if err != nil {
		return signalNone, nil, err
	}
	fmt.Fprintln(e.Writer, val.String())
	return signalNone, nil, nil
}

func (e *Evaluator) execUpdateStmt(s *ast.UpdateStmt) error {
	current, ok := e.Env.Get(s.Name)
	if !ok {
		return runtimeErrf(s.Line, "undefined variable '%s'", s.Name)
	}
	n, ok := current.(object.Number)
	if !ok {
		return runtimeErrf(s.Line, "'%s' requires a numeric operand, got %s", s.Op, current.Type())
	}
	e.Env.Assign(s.Name, object.Number{Value: n.Value + updateDelta(s.Op)})
	return nil
}

func (e *Evaluator) execAssignmentUpdateStmt(s *ast.AssignmentUpdateStmt) error {
	current, ok := e.Env.Get(s.Name)
	if !ok {
		return runtimeErrf(s.Line, "undefined variable '%s'", s.Name)
	}
	rhs, err := e.evalExpression(s.Value)
	if err != nil {
		return err
	}
	result, err := applyBinaryOp(compoundAssignOp(s.Op), current, rhs, s.Line)
	if err != nil {
		return err
	}
	e.Env.Assign(s.Name, result)
	return nil
}

// execBlock creates a fresh environment, executes the block's statements
// in it, and restores the prior environment on every exit path (normal,
// error, or Return).
func (e *Evaluator) execBlock(b *ast.Block) (signal, object.Value, error) {
	prev := e.Env
	e.Env = environment.NewChild(prev)
	defer func() { e.Env = prev }()
	return e.execStatements(b.Statements)
}

// execStatements runs statements in the current environment, without
// introducing a new scope of its own. Used both by execBlock (after it
// has created the block's scope) and by function invocation (the call
// frame itself serves as the body's scope, so no further nesting happens).
func (e *Evaluator) execStatements(stmts []ast.Statement) (signal, object.Value, error) {
	for _, stmt := range stmts {
		sig, val, err := e.execStatement(stmt)
		if err != nil {
			return signalNone, nil, err
		}
		if sig == signalReturn {
			return sig, val, nil
		}
	}
	return signalNone, nil, nil
}

func (e *Evaluator) execIf(s *ast.If) (signal, object.Value, error) {
	cond, err := e.evalExpression(s.Condition)
	if err != nil {
		return signalNone, nil, err
	}
	if cond.Truthy() {
		return e.execBlock(s.Then)
	}
	if s.Else != nil {
		return e.execBlock(s.Else)
	}
	return signalNone, nil, nil
}

func (e *Evaluator) execWhile(s *ast.While) (signal, object.Value, error) {
	for {
		cond, err := e.evalExpression(s.Condition)
		if err != nil {
			return signalNone, nil, err
		}
		if !cond.Truthy() {
			return signalNone, nil, nil
		}
		sig, val, err := e.execBlock(s.Body)
		if err != nil {
			return signalNone, nil, err
		}
		if sig == signalReturn {
			return sig, val, nil
		}
	}
}

// execFunction constructs a UserFunction capturing the current
// environment and binds it under its declared name, supporting direct
// recursion: the function's own call frame's parent is this closure, so
// the name resolves via parent lookup once the call is underway.
// Redefining a name already bound in the same scope is an error, exactly
// as for Let: both statements bind through the same scope-level rule.
func (e *Evaluator) execFunction(s *ast.Function) error {
	fn := &callable.UserFunction{Declaration: s, Closure: e.Env}
	if redefined := e.Env.Define(s.Name, fn); redefined {
		return runtimeErrf(s.Line, "'%s' is already defined in this scope", s.Name)
	}
	return nil
}

func (e *Evaluator) execReturn(s *ast.Return) (signal, object.Value, error) {
	var val object.Value = object.Null{}
	if s.Expr != nil {
		var err error
		val, err = e.evalExpression(s.Expr)
		if err != nil {
			return signalNone, nil, err
		}
	}
	return signalReturn, val, nil
}

func lineOf(stmt ast.Statement) int {
	switch s := stmt.(type) {
	case *ast.Let:
		return s.Line
	case *ast.Print:
		return s.Line
	case *ast.ExpressionStmt:
		return s.Line
	case *ast.UpdateStmt:
		return s.Line
	case *ast.AssignmentUpdateStmt:
		return s.Line
	case *ast.Block:
		return s.Line
	case *ast.If:
		return s.Line
	case *ast.While:
		return s.Line
	case *ast.Function:
		return s.Line
	case *ast.Return:
		return s.Line
	}
	return 0
}
