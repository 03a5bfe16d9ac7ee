package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vellum/lexer"
	"vellum/parser"
)

func TestPrintRendersEveryStatement(t *testing.T) {
	toks, err := lexer.New("let x = 1; print x;").Tokens()
	require.NoError(t, err)
	stmts, err := parser.New(toks).Parse()
	require.NoError(t, err)

	out := Print(stmts)
	assert.True(t, strings.Contains(out, "Let x"))
	assert.True(t, strings.Contains(out, "Print"))
	assert.True(t, strings.Contains(out, "Number 1"))
	assert.True(t, strings.Contains(out, "Variable x"))
}
