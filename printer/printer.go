// Package printer is vellum's debug collaborator: an AST pretty-printer
// used for tracing, never part of the language's observable contract. A
// single recursive type switch walks the tree rather than a parallel
// visitor interface — twenty-one node kinds don't earn one (see DESIGN.md).
package printer

import (
	"fmt"
	"strings"

	"vellum/ast"
)

const indentWidth = 2

// Print renders a full program as an indented tree, one line per node.
func Print(program []ast.Statement) string {
	var b strings.Builder
	for _, stmt := range program {
		writeStatement(&b, stmt, 0)
	}
	return b.String()
}

func writeLine(b *strings.Builder, depth int, format string, args ...any) {
	b.WriteString(strings.Repeat(" ", depth*indentWidth))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func writeStatement(b *strings.Builder, stmt ast.Statement, depth int) {
	switch s := stmt.(type) {
	case *ast.Let:
		writeLine(b, depth, "Let %s", s.Name)
		if s.Initializer != nil {
			writeExpression(b, s.Initializer, depth+1)
		}
	case *ast.Print:
		writeLine(b, depth, "Print")
		writeExpression(b, s.Expr, depth+1)
	case *ast.ExpressionStmt:
		writeLine(b, depth, "ExpressionStmt")
		writeExpression(b, s.Expr, depth+1)
	case *ast.UpdateStmt:
		writeLine(b, depth, "UpdateStmt %s %s prefix=%v", s.Name, s.Op, s.IsPrefix)
	case *ast.AssignmentUpdateStmt:
		writeLine(b, depth, "AssignmentUpdateStmt %s %s", s.Name, s.Op)
		writeExpression(b, s.Value, depth+1)
	case *ast.Block:
		writeLine(b, depth, "Block")
		for _, inner := range s.Statements {
			writeStatement(b, inner, depth+1)
		}
	case *ast.If:
		writeLine(b, depth, "If")
		writeExpression(b, s.Condition, depth+1)
		writeStatement(b, s.Then, depth+1)
		if s.Else != nil {
			writeStatement(b, s.Else, depth+1)
		}
	case *ast.While:
		writeLine(b, depth, "While")
		writeExpression(b, s.Condition, depth+1)
		writeStatement(b, s.Body, depth+1)
	case *ast.Function:
		writeLine(b, depth, "Function %s(%s)", s.Name, strings.Join(s.Params, ", "))
		writeStatement(b, s.Body, depth+1)
	case *ast.Return:
		writeLine(b, depth, "Return")
		if s.Expr != nil {
			writeExpression(b, s.Expr, depth+1)
		}
	default:
		writeLine(b, depth, "<unknown statement %T>", stmt)
	}
}

func writeExpression(b *strings.Builder, expr ast.Expression, depth int) {
	switch x := expr.(type) {
	case *ast.NumberLiteral:
		writeLine(b, depth, "Number %v", x.Value)
	case *ast.StringLiteral:
		writeLine(b, depth, "String %q", x.Value)
	case *ast.BooleanLiteral:
		writeLine(b, depth, "Boolean %v", x.Value)
	case *ast.Variable:
		writeLine(b, depth, "Variable %s", x.Name)
	case *ast.ArrayLiteral:
		writeLine(b, depth, "Array")
		for _, elem := range x.Elements {
			writeExpression(b, elem, depth+1)
		}
	case *ast.Index:
		writeLine(b, depth, "Index")
		writeExpression(b, x.Array, depth+1)
		writeExpression(b, x.At, depth+1)
	case *ast.Binary:
		writeLine(b, depth, "Binary %s", x.Op)
		writeExpression(b, x.Left, depth+1)
		writeExpression(b, x.Right, depth+1)
	case *ast.Unary:
		writeLine(b, depth, "Unary %s", x.Op)
		writeExpression(b, x.Operand, depth+1)
	case *ast.Call:
		writeLine(b, depth, "Call")
		writeExpression(b, x.Callee, depth+1)
		for _, arg := range x.Args {
			writeExpression(b, arg, depth+1)
		}
	case *ast.Update:
		writeLine(b, depth, "Update %s %s", x.Name, x.Op)
	case *ast.Grouping:
		writeLine(b, depth, "Grouping")
		writeExpression(b, x.Inner, depth+1)
	default:
		writeLine(b, depth, "<unknown expression %T>", expr)
	}
}
