package eval

import (
	"math"

	"vellum/lexer"
	"vellum/object"
)

// applyBinaryOp implements every non-assignment, non-short-circuit binary
// operator. Binary `=`, `&&`, and `||` are handled directly by
// evalBinary since they need special evaluation order, not just
// value combination.
func applyBinaryOp(op lexer.TokenType, left, right object.Value, line int) (object.Value, error) {
	switch op {
	case lexer.Plus:
		if left.Type() == object.StringType || right.Type() == object.StringType {
			return object.String{Value: left.String() + right.String()}, nil
		}
		l, r, err := numericOperands(op, left, right, line)
		if err != nil {
			return nil, err
		}
		return object.Number{Value: l + r}, nil
	case lexer.Minus:
		l, r, err := numericOperands(op, left, right, line)
		if err != nil {
			return nil, err
		}
		return object.Number{Value: l - r}, nil
	case lexer.Star:
		l, r, err := numericOperands(op, left, right, line)
		if err != nil {
			return nil, err
		}
		return object.Number{Value: l * r}, nil
	case lexer.Slash:
		l, r, err := numericOperands(op, left, right, line)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, runtimeErrf(line, "division by zero")
		}
		return object.Number{Value: l / r}, nil
	case lexer.Modulo:
		ln, ok := left.(object.Number)
		if !ok || !ln.IsInteger() {
			return nil, runtimeErrf(line, "'%%' requires an integer-valued left operand, got %s", left.String())
		}
		rn, ok := right.(object.Number)
		if !ok || !rn.IsInteger() {
			return nil, runtimeErrf(line, "'%%' requires an integer-valued right operand, got %s", right.String())
		}
		if rn.Value == 0 {
			return nil, runtimeErrf(line, "modulo by zero")
		}
		return object.Number{Value: math.Mod(ln.Value, rn.Value)}, nil
	case lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual:
		l, r, err := numericOperands(op, left, right, line)
		if err != nil {
			return nil, err
		}
		return object.Bool{Value: compare(op, l, r)}, nil
	case lexer.EqualEqual:
		return object.Bool{Value: left.Equal(right)}, nil
	case lexer.BangEqual:
		return object.Bool{Value: !left.Equal(right)}, nil
	}
	return nil, runtimeErrf(line, "unsupported binary operator %s", op)
}

func compare(op lexer.TokenType, l, r float64) bool {
	switch op {
	case lexer.Greater:
		return l > r
	case lexer.GreaterEqual:
		return l >= r
	case lexer.Less:
		return l < r
	case lexer.LessEqual:
		return l <= r
	}
	return false
}

func numericOperands(op lexer.TokenType, left, right object.Value, line int) (float64, float64, error) {
	l, ok := left.(object.Number)
	if !ok {
		return 0, 0, runtimeErrf(line, "operator %s requires numeric operands, got %s", op, left.Type())
	}
	r, ok := right.(object.Number)
	if !ok {
		return 0, 0, runtimeErrf(line, "operator %s requires numeric operands, got %s", op, right.Type())
	}
	return l.Value, r.Value, nil
}

func applyUnaryOp(op lexer.TokenType, operand object.Value, line int) (object.Value, error) {
	switch op {
	case lexer.Minus:
		n, ok := operand.(object.Number)
		if !ok {
			return nil, runtimeErrf(line, "unary '-' requires a numeric operand, got %s", operand.Type())
		}
		return object.Number{Value: -n.Value}, nil
	case lexer.Bang:
		return object.Bool{Value: !operand.Truthy()}, nil
	}
	return nil, runtimeErrf(line, "unsupported unary operator %s", op)
}

// compoundAssignOp maps a `+=`-family token to the underlying arithmetic
// operator applyBinaryOp understands.
func compoundAssignOp(op lexer.TokenType) lexer.TokenType {
	switch op {
	case lexer.PlusEqual:
		return lexer.Plus
	case lexer.MinusEqual:
		return lexer.Minus
	case lexer.StarEqual:
		return lexer.Star
	case lexer.SlashEqual:
		return lexer.Slash
	}
	return op
}

// updateDelta returns +1/-1 for `++`/`--`.
func updateDelta(op lexer.TokenType) float64 {
	if op == lexer.MinusMinus {
		return -1
	}
	return 1
}
