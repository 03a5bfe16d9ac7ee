// Package parser turns a vellum token stream into a forest of statement
// nodes. It is a recursive-descent parser with one function per expression
// precedence level: the grammar's ten levels are fixed and small enough
// that explicit per-level functions read more clearly than a token-keyed
// registration table (see DESIGN.md).
//
// The full token stream is materialized up front by the lexer, so
// lookahead is just a cursor bump over a slice rather than a pull from a
// streaming scanner.
package parser

import (
	"fmt"
	"strconv"

	"vellum/ast"
	"vellum/lexer"
)

const maxParams = 255

// Error is a syntax error: unexpected token, missing terminator, invalid
// assignment target, parameter/argument overflow, or invalid statement
// start.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parser consumes a fixed token slice and produces statements. Parsing
// aborts at the first syntax error rather than collecting and reporting
// every error in a source file.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over a token slice produced by lexer.Tokens().
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream and returns the top-level
// statements, or the first syntax error encountered.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) current() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EndOfFile
	}
	return p.tokens[i]
}

func (p *Parser) atEnd() bool { return p.current().Kind == lexer.EndOfFile }

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenType) bool {
	return p.current().Kind == kind
}

func (p *Parser) match(kinds ...lexer.TokenType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, &Error{Line: p.current().Line, Message: message}
}

func (p *Parser) errf(line int, format string, args ...any) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// statement dispatches on the current token's kind to the matching
// statement-level parser.
func (p *Parser) statement() (ast.Statement, error) {
	switch p.current().Kind {
	case lexer.Print:
		return p.printStatement()
	case lexer.Let:
		return p.letStatement()
	case lexer.If:
		return p.ifStatement()
	case lexer.While:
		return p.whileStatement()
	case lexer.Function:
		return p.functionStatement()
	case lexer.Return:
		return p.returnStatement()
	case lexer.LBrace:
		return p.block()
	case lexer.PlusPlus, lexer.MinusMinus:
		return p.prefixUpdateStatement()
	case lexer.Identifier:
		switch p.peek(1).Kind {
		case lexer.PlusPlus, lexer.MinusMinus:
			return p.postfixUpdateStatement()
		case lexer.PlusEqual, lexer.MinusEqual, lexer.StarEqual, lexer.SlashEqual:
			return p.assignmentUpdateStatement()
		}
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (ast.Statement, error) {
	line := p.advance().Line // `print`
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "expected ';' after print statement"); err != nil {
		return nil, err
	}
	return &ast.Print{Expr: expr, Line: line}, nil
}

func (p *Parser) letStatement() (ast.Statement, error) {
	line := p.advance().Line // `let`
	name, err := p.consume(lexer.Identifier, "expected variable name after 'let'")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.match(lexer.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "expected ';' after let statement"); err != nil {
		return nil, err
	}
	return &ast.Let{Name: name.Lexeme, Initializer: init, Line: line}, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	line := p.advance().Line // `if`
	if _, err := p.consume(lexer.LParen, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	if !p.check(lexer.LBrace) {
		return nil, p.errf(p.current().Line, "expected block after if condition")
	}
	thenBlock, err := p.block()
	if err != nil {
		return nil, err
	}
	var elseBlock *ast.Block
	if p.match(lexer.Else) {
		if !p.check(lexer.LBrace) {
			return nil, p.errf(p.current().Line, "expected block after 'else'")
		}
		elseBlock, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Condition: cond, Then: thenBlock, Else: elseBlock, Line: line}, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	line := p.advance().Line // `while`
	if _, err := p.consume(lexer.LParen, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	if !p.check(lexer.LBrace) {
		return nil, p.errf(p.current().Line, "expected block after while condition")
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body, Line: line}, nil
}

func (p *Parser) functionStatement() (ast.Statement, error) {
	line := p.advance().Line // `function`
	name, err := p.consume(lexer.Identifier, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LParen, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []string
	if !p.check(lexer.RParen) {
		for {
			param, err := p.consume(lexer.Identifier, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if len(params) > maxParams {
				return nil, p.errf(line, "function cannot have more than %d parameters", maxParams)
			}
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RParen, "expected ')' after parameter list"); err != nil {
		return nil, err
	}
	if !p.check(lexer.LBrace) {
		return nil, p.errf(p.current().Line, "expected block as function body")
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Name: name.Lexeme, Params: params, Body: body, Line: line}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	line := p.advance().Line // `return`
	var expr ast.Expression
	if !p.check(lexer.Semicolon) {
		var err error
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "expected ';' after return statement"); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr, Line: line}, nil
}

func (p *Parser) block() (*ast.Block, error) {
	line := p.advance().Line // `{`
	var stmts []ast.Statement
	for !p.check(lexer.RBrace) && !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(lexer.RBrace, "expected '}' to close block"); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts, Line: line}, nil
}

func (p *Parser) prefixUpdateStatement() (ast.Statement, error) {
	op := p.advance() // `++` or `--`
	name, err := p.consume(lexer.Identifier, "expected variable name after prefix '++'/'--'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "expected ';' after update statement"); err != nil {
		return nil, err
	}
	return &ast.UpdateStmt{Name: name.Lexeme, Op: op.Kind, IsPrefix: true, Line: op.Line}, nil
}

func (p *Parser) postfixUpdateStatement() (ast.Statement, error) {
	name := p.advance() // identifier
	op := p.advance()    // `++` or `--`
	if _, err := p.consume(lexer.Semicolon, "expected ';' after update statement"); err != nil {
		return nil, err
	}
	return &ast.UpdateStmt{Name: name.Lexeme, Op: op.Kind, IsPrefix: false, Line: name.Line}, nil
}

func (p *Parser) assignmentUpdateStatement() (ast.Statement, error) {
	name := p.advance() // identifier
	op := p.advance()    // `+=` etc.
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "expected ';' after compound assignment"); err != nil {
		return nil, err
	}
	return &ast.AssignmentUpdateStmt{Name: name.Lexeme, Op: op.Kind, Value: value, Line: name.Line}, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	line := p.current().Line
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "expected ';' after expression statement"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr, Line: line}, nil
}

// --- Expressions, precedence lowest to highest. ---

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.check(lexer.Equal) {
		eq := p.advance()
		value, err := p.assignment() // right-associative
		if err != nil {
			return nil, err
		}
		if _, ok := left.(*ast.Variable); !ok {
			return nil, p.errf(eq.Line, "invalid assignment target")
		}
		return &ast.Binary{Left: left, Op: lexer.Equal, Right: value, Line: eq.Line}, nil
	}
	return left, nil
}

func (p *Parser) or() (ast.Expression, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.OrOr) {
		op := p.advance()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op.Kind, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) and() (ast.Expression, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.AndAnd) {
		op := p.advance()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op.Kind, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.leftAssocBinary(p.comparison, lexer.EqualEqual, lexer.BangEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.leftAssocBinary(p.term, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.leftAssocBinary(p.factor, lexer.Plus, lexer.Minus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.leftAssocBinary(p.unary, lexer.Star, lexer.Slash, lexer.Modulo)
}

// leftAssocBinary implements one precedence level: parse a next-higher
// expression, then repeatedly consume any of the given operator kinds.
func (p *Parser) leftAssocBinary(next func() (ast.Expression, error), kinds ...lexer.TokenType) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for contains(kinds, p.current().Kind) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op.Kind, Right: right, Line: op.Line}
	}
	return left, nil
}

func contains(kinds []lexer.TokenType, k lexer.TokenType) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.check(lexer.Bang) || p.check(lexer.Minus) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op.Kind, Operand: operand, Line: op.Line}, nil
	}
	return p.callOrIndex()
}

func (p *Parser) callOrIndex() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(lexer.LParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.check(lexer.LeftSquare):
			line := p.advance().Line
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RightSquare, "expected ']' after index expression"); err != nil {
				return nil, err
			}
			expr = &ast.Index{Array: expr, At: index, Line: line}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	line := p.advance().Line // `(`
	var args []ast.Expression
	if !p.check(lexer.RParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if len(args) > maxParams {
				return nil, p.errf(line, "call cannot have more than %d arguments", maxParams)
			}
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RParen, "expected ')' after argument list"); err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Args: args, Line: line}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.Number:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errf(tok.Line, "invalid number literal %q", tok.Lexeme)
		}
		return &ast.NumberLiteral{Value: v, Line: tok.Line}, nil
	case lexer.String:
		p.advance()
		return &ast.StringLiteral{Value: tok.Lexeme, Line: tok.Line}, nil
	case lexer.True:
		p.advance()
		return &ast.BooleanLiteral{Value: true, Line: tok.Line}, nil
	case lexer.False:
		p.advance()
		return &ast.BooleanLiteral{Value: false, Line: tok.Line}, nil
	case lexer.Identifier:
		p.advance()
		return &ast.Variable{Name: tok.Lexeme, Line: tok.Line}, nil
	case lexer.LParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RParen, "expected ')' to close grouping"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: inner, Line: tok.Line}, nil
	case lexer.LeftSquare:
		p.advance()
		var elems []ast.Expression
		if !p.check(lexer.RightSquare) {
			for {
				elem, err := p.expression()
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
				if !p.match(lexer.Comma) {
					break
				}
			}
		}
		if _, err := p.consume(lexer.RightSquare, "expected ']' to close array literal"); err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Elements: elems, Line: tok.Line}, nil
	}
	return nil, p.errf(tok.Line, "unexpected token %s", tok.Kind)
}
