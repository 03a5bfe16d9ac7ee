package eval

import (
	"fmt"

	"vellum/ast"
	"vellum/callable"
	"vellum/environment"
	"vellum/lexer"
	"vellum/object"
)

func (e *Evaluator) evalExpression(expr ast.Expression) (object.Value, error) {
	switch x := expr.(type) {
	case *ast.NumberLiteral:
		return object.Number{Value: x.Value}, nil
	case *ast.StringLiteral:
		return object.String{Value: x.Value}, nil
	case *ast.BooleanLiteral:
		return object.Bool{Value: x.Value}, nil
	case *ast.Variable:
		val, ok := e.Env.Get(x.Name)
		if !ok {
			return nil, runtimeErrf(x.Line, "undefined variable '%s'", x.Name)
		}
		return val, nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(x)
	case *ast.Index:
		return e.evalIndex(x)
	case *ast.Binary:
		return e.evalBinary(x)
	case *ast.Unary:
		return e.evalUnary(x)
	case *ast.Call:
		return e.evalCall(x)
	case *ast.Grouping:
		return e.evalExpression(x.Inner)
	case *ast.Update:
		return e.evalUpdateExpr(x)
	}
	return nil, fmt.Errorf("eval: unhandled expression %T", expr)
}

func (e *Evaluator) evalArrayLiteral(x *ast.ArrayLiteral) (object.Value, error) {
	elems := make([]object.Value, len(x.Elements))
	for i, elemExpr := range x.Elements {
		v, err := e.evalExpression(elemExpr)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return object.Array{Elements: elems}, nil
}

func (e *Evaluator) evalIndex(x *ast.Index) (object.Value, error) {
	arrVal, err := e.evalExpression(x.Array)
	if err != nil {
		return nil, err
	}
	arr, ok := arrVal.(object.Array)
	if !ok {
		return nil, runtimeErrf(x.Line, "cannot index into %s", arrVal.Type())
	}
	idxVal, err := e.evalExpression(x.At)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(object.Number)
	if !ok || !idxNum.IsInteger() || idxNum.Value < 0 {
		return nil, runtimeErrf(x.Line, "array index must be a non-negative integer, got %s", idxVal.String())
	}
	idx := int(idxNum.Value)
	if idx >= len(arr.Elements) {
		return nil, runtimeErrf(x.Line, "array index %d out of bounds for length %d", idx, len(arr.Elements))
	}
	return arr.Elements[idx], nil
}

func (e *Evaluator) evalBinary(x *ast.Binary) (object.Value, error) {
	switch x.Op {
	case lexer.Equal:
		variable, ok := x.Left.(*ast.Variable)
		if !ok {
			return nil, runtimeErrf(x.Line, "invalid assignment target")
		}
		val, err := e.evalExpression(x.Right)
		if err != nil {
			return nil, err
		}
		if !e.Env.Assign(variable.Name, val) {
			return nil, runtimeErrf(x.Line, "undefined variable '%s'", variable.Name)
		}
		return val, nil
	case lexer.AndAnd:
		left, err := e.evalExpression(x.Left)
		if err != nil {
			return nil, err
		}
		if !left.Truthy() {
			return object.Bool{Value: false}, nil
		}
		right, err := e.evalExpression(x.Right)
		if err != nil {
			return nil, err
		}
		return object.Bool{Value: right.Truthy()}, nil
	case lexer.OrOr:
		left, err := e.evalExpression(x.Left)
		if err != nil {
			return nil, err
		}
		if left.Truthy() {
			return object.Bool{Value: true}, nil
		}
		right, err := e.evalExpression(x.Right)
		if err != nil {
			return nil, err
		}
		return object.Bool{Value: right.Truthy()}, nil
	}

	left, err := e.evalExpression(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpression(x.Right)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(x.Op, left, right, x.Line)
}

func (e *Evaluator) evalUnary(x *ast.Unary) (object.Value, error) {
	operand, err := e.evalExpression(x.Operand)
	if err != nil {
		return nil, err
	}
	return applyUnaryOp(x.Op, operand, x.Line)
}

func (e *Evaluator) evalUpdateExpr(x *ast.Update) (object.Value, error) {
	current, ok := e.Env.Get(x.Name)
	if !ok {
		return nil, runtimeErrf(x.Line, "undefined variable '%s'", x.Name)
	}
	n, ok := current.(object.Number)
	if !ok {
		return nil, runtimeErrf(x.Line, "'%s' requires a numeric operand, got %s", x.Op, current.Type())
	}
	updated := object.Number{Value: n.Value + updateDelta(x.Op)}
	e.Env.Assign(x.Name, updated)
	return updated, nil
}

func (e *Evaluator) evalCall(x *ast.Call) (object.Value, error) {
	calleeVal, err := e.evalExpression(x.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeVal.(object.Callable)
	if !ok {
		return nil, runtimeErrf(x.Line, "cannot call %s, not a function", calleeVal.Type())
	}

	args := make([]object.Value, len(x.Args))
	for i, argExpr := range x.Args {
		v, err := e.evalExpression(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if len(args) != fn.Arity() {
		return nil, runtimeErrf(x.Line, "'%s' expects %d argument(s), got %d", fn.Name(), fn.Arity(), len(args))
	}

	return e.invoke(fn, args, x.Line)
}

func (e *Evaluator) invoke(fn object.Callable, args []object.Value, line int) (object.Value, error) {
	switch f := fn.(type) {
	case *callable.UserFunction:
		frame := environment.NewChild(f.Closure)
		for i, param := range f.Declaration.Params {
			frame.Define(param, args[i])
		}
		prev := e.Env
		e.Env = frame
		defer func() { e.Env = prev }()

		sig, val, err := e.execStatements(f.Declaration.Body.Statements)
		if err != nil {
			return nil, err
		}
		if sig == signalReturn {
			return val, nil
		}
		return object.Null{}, nil
	case *callable.NativeFunction:
		val, err := f.Impl(args)
		if err != nil {
			return nil, runtimeErrf(line, "%s", err)
		}
		return val, nil
	}
	return nil, runtimeErrf(line, "unsupported callable implementation")
}
