package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_Operators(t *testing.T) {
	src := "+ - * / % ( ) { } [ ] , . ; == != <= >= < > = ! ++ -- += -= *= /= && ||"
	toks, err := New(src).Tokens()
	require.NoError(t, err)

	want := []TokenType{
		Plus, Minus, Star, Slash, Modulo, LParen, RParen, LBrace, RBrace,
		LeftSquare, RightSquare, Comma, Dot, Semicolon, EqualEqual, BangEqual,
		LessEqual, GreaterEqual, Less, Greater, Equal, Bang, PlusPlus,
		MinusMinus, PlusEqual, MinusEqual, StarEqual, SlashEqual, AndAnd, OrOr,
		EndOfFile,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestTokens_EndsWithSingleEOF(t *testing.T) {
	toks, err := New("let x = 1;").Tokens()
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, EndOfFile, toks[len(toks)-1].Kind)
	for _, tok := range toks[:len(toks)-1] {
		assert.NotEqual(t, EndOfFile, tok.Kind)
	}
}

func TestTokens_EOFLineIsPastLastLine(t *testing.T) {
	toks, err := New("let x = 1;\nlet y = 2;").Tokens()
	require.NoError(t, err)
	assert.Equal(t, 3, toks[len(toks)-1].Line)
}

func TestTokens_KeywordsAndCaseSensitivity(t *testing.T) {
	toks, err := New("if else while function let print return True False").Tokens()
	require.NoError(t, err)
	want := []TokenType{If, Else, While, Function, Let, Print, Return, True, False, EndOfFile}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestTokens_IdentifierNotKeyword(t *testing.T) {
	toks, err := New("true false andOr").Tokens()
	require.NoError(t, err)
	// lowercase true/false are NOT keywords in this language; they lex as identifiers.
	assert.Equal(t, Identifier, toks[0].Kind)
	assert.Equal(t, Identifier, toks[1].Kind)
	assert.Equal(t, Identifier, toks[2].Kind)
}

func TestTokens_StringLiteral(t *testing.T) {
	toks, err := New(`"hello world"`).Tokens()
	require.NoError(t, err)
	assert.Equal(t, String, toks[0].Kind)
	assert.Equal(t, "hello world", toks[0].Lexeme)
}

func TestTokens_UnterminatedString(t *testing.T) {
	_, err := New(`"hello`).Tokens()
	require.Error(t, err)
}

func TestTokens_StringCannotSpanLines(t *testing.T) {
	_, err := New("\"hello\nworld\"").Tokens()
	require.Error(t, err)
}

func TestTokens_Number(t *testing.T) {
	toks, err := New("42 3.14 0.5").Tokens()
	require.NoError(t, err)
	assert.Equal(t, "42", toks[0].Lexeme)
	assert.Equal(t, "3.14", toks[1].Lexeme)
	assert.Equal(t, "0.5", toks[2].Lexeme)
}

func TestTokens_LineComment(t *testing.T) {
	toks, err := New("1 // comment\n2").Tokens()
	require.NoError(t, err)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, "2", toks[1].Lexeme)
	assert.Equal(t, 2, toks[1].Line)
}

func TestTokens_LoneAmpersandIsError(t *testing.T) {
	_, err := New("a & b").Tokens()
	require.Error(t, err)
}

func TestTokens_LonePipeIsError(t *testing.T) {
	_, err := New("a | b").Tokens()
	require.Error(t, err)
}

func TestTokens_UnrecognizedCharacter(t *testing.T) {
	_, err := New("@").Tokens()
	require.Error(t, err)
}

func TestTokens_MaximalMunch(t *testing.T) {
	toks, err := New("a++b").Tokens()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{Identifier, PlusPlus, Identifier, EndOfFile}, []TokenType{toks[0].Kind, toks[1].Kind, toks[2].Kind, toks[3].Kind})
}
