package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vellum/ast"
	"vellum/lexer"
)

func parse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	toks, err := lexer.New(src).Tokens()
	require.NoError(t, err)
	stmts, err := New(toks).Parse()
	require.NoError(t, err)
	return stmts
}

func TestParseLetWithInitializer(t *testing.T) {
	stmts := parse(t, "let x = 1;")
	require.Len(t, stmts, 1)
	let, ok := stmts[0].(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	num, ok := let.Initializer.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 1.0, num.Value)
}

func TestParseLetWithoutInitializer(t *testing.T) {
	stmts := parse(t, "let x;")
	let := stmts[0].(*ast.Let)
	assert.Nil(t, let.Initializer)
}

func TestAssignmentIsRightAssociativeBinaryEqual(t *testing.T) {
	stmts := parse(t, "x = y = 1;")
	exprStmt := stmts[0].(*ast.ExpressionStmt)
	outer := exprStmt.Expr.(*ast.Binary)
	assert.Equal(t, lexer.Equal, outer.Op)
	assert.Equal(t, "x", outer.Left.(*ast.Variable).Name)
	inner := outer.Right.(*ast.Binary)
	assert.Equal(t, lexer.Equal, inner.Op)
	assert.Equal(t, "y", inner.Left.(*ast.Variable).Name)
}

func TestInvalidAssignmentTargetIsSyntaxError(t *testing.T) {
	toks, err := lexer.New("1 = 2;").Tokens()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	assert.Error(t, err)
}

func TestPrecedenceOfArithmetic(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	stmts := parse(t, "print 1 + 2 * 3;")
	print := stmts[0].(*ast.Print)
	add := print.Expr.(*ast.Binary)
	assert.Equal(t, lexer.Plus, add.Op)
	_, isNum := add.Left.(*ast.NumberLiteral)
	assert.True(t, isNum)
	mul := add.Right.(*ast.Binary)
	assert.Equal(t, lexer.Star, mul.Op)
}

func TestLogicalPrecedenceBelowEquality(t *testing.T) {
	// a == b && c == d parses as (a==b) && (c==d)
	stmts := parse(t, "print a == b && c == d;")
	print := stmts[0].(*ast.Print)
	and := print.Expr.(*ast.Binary)
	assert.Equal(t, lexer.AndAnd, and.Op)
	_, ok := and.Left.(*ast.Binary)
	assert.True(t, ok)
	_, ok = and.Right.(*ast.Binary)
	assert.True(t, ok)
}

func TestCallAndIndexChain(t *testing.T) {
	stmts := parse(t, "print f(1)[0];")
	print := stmts[0].(*ast.Print)
	idx := print.Expr.(*ast.Index)
	call := idx.Array.(*ast.Call)
	assert.Equal(t, "f", call.Callee.(*ast.Variable).Name)
	assert.Len(t, call.Args, 1)
}

func TestEmptyArrayLiteral(t *testing.T) {
	stmts := parse(t, "let a = [];")
	let := stmts[0].(*ast.Let)
	arr := let.Initializer.(*ast.ArrayLiteral)
	assert.Empty(t, arr.Elements)
}

func TestTrailingCommaInArrayIsError(t *testing.T) {
	toks, err := lexer.New("let a = [1, 2,];").Tokens()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	assert.Error(t, err)
}

func TestIfRequiresBlockBranches(t *testing.T) {
	toks, err := lexer.New("if (true) print 1;").Tokens()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	assert.Error(t, err)
}

func TestPrefixAndPostfixUpdateStatements(t *testing.T) {
	stmts := parse(t, "++x; x++; --y; y--;")
	require.Len(t, stmts, 4)
	u0 := stmts[0].(*ast.UpdateStmt)
	assert.True(t, u0.IsPrefix)
	assert.Equal(t, lexer.PlusPlus, u0.Op)
	u1 := stmts[1].(*ast.UpdateStmt)
	assert.False(t, u1.IsPrefix)
	assert.Equal(t, lexer.PlusPlus, u1.Op)
}

func TestCompoundAssignmentStatement(t *testing.T) {
	stmts := parse(t, "x += 1;")
	upd := stmts[0].(*ast.AssignmentUpdateStmt)
	assert.Equal(t, "x", upd.Name)
	assert.Equal(t, lexer.PlusEqual, upd.Op)
}

func TestFunctionDeclarationParamLimitAccepted(t *testing.T) {
	src := "function f("
	for i := 0; i < 255; i++ {
		if i > 0 {
			src += ", "
		}
		src += "p" + itoa(i)
	}
	src += ") { return 0; }"
	toks, err := lexer.New(src).Tokens()
	require.NoError(t, err)
	stmts, err := New(toks).Parse()
	require.NoError(t, err)
	fn := stmts[0].(*ast.Function)
	assert.Len(t, fn.Params, 255)
}

func TestFunctionDeclarationParamLimitRejected(t *testing.T) {
	src := "function f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "p" + itoa(i)
	}
	src += ") { return 0; }"
	toks, err := lexer.New(src).Tokens()
	require.NoError(t, err)
	_, err = New(toks).Parse()
	assert.Error(t, err)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}
