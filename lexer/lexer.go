package lexer

import (
	"fmt"
	"strings"
)

// Error is a lexical failure: an unrecognized character, an unterminated
// string literal, or a lone '&'/'|' with no matching partner. Lexing
// aborts on the first one encountered — there is no error recovery.
//
// Fields:
//   - Line: the 1-based source line the offending character was found on.
//   - Message: a human-readable description of the failure.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Lexer scans vellum source text into tokens one line at a time. It is a
// pure function of the input text: constructing one and calling Tokens()
// has no side effects beyond producing the token slice, and calling
// Tokens() twice on the same Lexer would be meaningless since scanning
// consumes the cursor — callers construct a fresh Lexer per source text.
//
// Fields:
//   - src: the full source text being scanned.
//   - pos: the byte offset of current within src.
//   - line: the 1-based line currently being scanned.
//   - current: the byte at pos, or 0 once scanning has run past the end.
//   - endsWithNewline: whether src is empty or ends in '\n', which the
//     EndOfFile token's line number depends on (see next).
type Lexer struct {
	src             string
	pos             int
	line            int
	current         byte
	endsWithNewline bool
}

// New creates a Lexer positioned at the start of src, ready for Tokens.
//
// Parameters:
//   - src: the complete source text to scan.
//
// Returns:
//   - *Lexer: a lexer positioned at line 1, byte offset 0.
func New(src string) *Lexer {
	l := &Lexer{src: src, pos: 0, line: 1, endsWithNewline: len(src) == 0 || strings.HasSuffix(src, "\n")}
	if len(src) > 0 {
		l.current = src[0]
	}
	return l
}

// Tokens scans the entire source and returns every token, ending with a
// single EndOfFile token whose Line is one past the last source line
// regardless of whether that line ends in a trailing newline.
//
// Returns:
//   - []Token: the full token stream, nil on error.
//   - error: the first lexical error encountered, if any.
func (l *Lexer) Tokens() ([]Token, error) {
	tokens := make([]Token, 0, len(l.src)/4)
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EndOfFile {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() {
	l.pos++
	if l.pos >= len(l.src) {
		l.current = 0
		l.pos = len(l.src)
		return
	}
	l.current = l.src[l.pos]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// skipWhitespaceAndComments consumes spaces, tabs, carriage returns,
// newlines, and `//` line comments. Newlines advance the line counter but
// never produce a token.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.current {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.line++
			l.advance()
		default:
			if l.current == '/' && l.peek() == '/' {
				for !l.atEnd() && l.current != '\n' {
					l.advance()
				}
				continue
			}
			return
		}
	}
}

// next scans and returns the next token.
func (l *Lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()

	line := l.line
	if l.atEnd() {
		// l.line tracks the line currently being scanned, which only
		// advances past a '\n' actually consumed. A source ending without a
		// trailing newline therefore leaves l.line one short of "one past
		// the last source line" (spec.md §4.1); a trailing newline already
		// advances l.line into that next, empty line on its own.
		eofLine := l.line
		if !l.endsWithNewline {
			eofLine++
		}
		return newToken(EndOfFile, "", eofLine), nil
	}

	c := l.current

	switch {
	case isDigit(c):
		return l.readNumber(line), nil
	case isAlpha(c):
		return l.readIdentifier(line), nil
	case c == '"':
		return l.readString(line)
	}

	switch c {
	case '(':
		l.advance()
		return newToken(LParen, "(", line), nil
	case ')':
		l.advance()
		return newToken(RParen, ")", line), nil
	case '{':
		l.advance()
		return newToken(LBrace, "{", line), nil
	case '}':
		l.advance()
		return newToken(RBrace, "}", line), nil
	case '[':
		l.advance()
		return newToken(LeftSquare, "[", line), nil
	case ']':
		l.advance()
		return newToken(RightSquare, "]", line), nil
	case ',':
		l.advance()
		return newToken(Comma, ",", line), nil
	case '.':
		l.advance()
		return newToken(Dot, ".", line), nil
	case ';':
		l.advance()
		return newToken(Semicolon, ";", line), nil
	case '*':
		return l.twoCharOr(line, '=', StarEqual, "*=", Star, "*"), nil
	case '%':
		l.advance()
		return newToken(Modulo, "%", line), nil
	case '!':
		return l.twoCharOr(line, '=', BangEqual, "!=", Bang, "!"), nil
	case '=':
		return l.twoCharOr(line, '=', EqualEqual, "==", Equal, "="), nil
	case '<':
		return l.twoCharOr(line, '=', LessEqual, "<=", Less, "<"), nil
	case '>':
		return l.twoCharOr(line, '=', GreaterEqual, ">=", Greater, ">"), nil
	case '+':
		if l.peek() == '+' {
			l.advance()
			l.advance()
			return newToken(PlusPlus, "++", line), nil
		}
		return l.twoCharOr(line, '=', PlusEqual, "+=", Plus, "+"), nil
	case '-':
		if l.peek() == '-' {
			l.advance()
			l.advance()
			return newToken(MinusMinus, "--", line), nil
		}
		return l.twoCharOr(line, '=', MinusEqual, "-=", Minus, "-"), nil
	case '/':
		return l.twoCharOr(line, '=', SlashEqual, "/=", Slash, "/"), nil
	case '&':
		if l.peek() == '&' {
			l.advance()
			l.advance()
			return newToken(AndAnd, "&&", line), nil
		}
		return Token{}, &Error{Line: line, Message: "lone '&' is not a valid token (did you mean '&&'?)"}
	case '|':
		if l.peek() == '|' {
			l.advance()
			l.advance()
			return newToken(OrOr, "||", line), nil
		}
		return Token{}, &Error{Line: line, Message: "lone '|' is not a valid token (did you mean '||'?)"}
	}

	return Token{}, &Error{Line: line, Message: fmt.Sprintf("unrecognized character %q", c)}
}

// twoCharOr scans either a two-character token ending in '=' (or a fixed
// second rune described by the caller having already handled it) or falls
// back to the single-character token.
func (l *Lexer) twoCharOr(line int, second byte, twoKind TokenType, twoLexeme string, oneKind TokenType, oneLexeme string) Token {
	if l.peek() == second {
		l.advance()
		l.advance()
		return newToken(twoKind, twoLexeme, line)
	}
	l.advance()
	return newToken(oneKind, oneLexeme, line)
}

func (l *Lexer) readNumber(line int) Token {
	start := l.pos
	for !l.atEnd() && isDigit(l.current) {
		l.advance()
	}
	if !l.atEnd() && l.current == '.' && isDigit(l.peek()) {
		l.advance()
		for !l.atEnd() && isDigit(l.current) {
			l.advance()
		}
	}
	return newToken(Number, l.src[start:l.pos], line)
}

func (l *Lexer) readIdentifier(line int) Token {
	start := l.pos
	for !l.atEnd() && isAlphaNumeric(l.current) {
		l.advance()
	}
	text := l.src[start:l.pos]
	kind := lookupIdentifier(text)
	return newToken(kind, text, line)
}

func (l *Lexer) readString(line int) (Token, error) {
	l.advance() // consume opening quote
	start := l.pos
	for {
		if l.atEnd() || l.current == '\n' {
			return Token{}, &Error{Line: line, Message: "unterminated string literal"}
		}
		if l.current == '"' {
			break
		}
		l.advance()
	}
	text := l.src[start:l.pos]
	l.advance() // consume closing quote
	return newToken(String, text, line), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// SplitLines is a small convenience for callers that want to feed source
// to the lexer a line at a time, e.g. a REPL echoing one line back at a
// time. The Lexer itself is happy to consume the whole text at once (it
// tracks lines internally), so this exists only to avoid re-deriving line
// splitting rules at call sites that want it.
func SplitLines(src string) []string {
	return strings.Split(src, "\n")
}
