// Package repl implements vellum's interactive Read-Eval-Print Loop: a
// readline-backed line editor with colorized diagnostics, persisting one
// Evaluator (and so one global environment) across the whole session so
// `let`s and `function`s from earlier lines stay visible to later ones.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"vellum/eval"
	"vellum/lexer"
	"vellum/parser"
	"vellum/printer"
)

var (
	errorColor  = color.New(color.FgRed)
	bannerColor = color.New(color.FgGreen)
	lineColor   = color.New(color.FgBlue)
	infoColor   = color.New(color.FgCyan)
)

const banner = `vellum`

// Repl is a configured interactive session.
type Repl struct {
	Prompt string
	trace  bool
}

// New creates a Repl with the given prompt string. When trace is true, the
// REPL starts with AST tracing on (toggle any time with ".ast"): each line's
// parsed statements are printed before being evaluated.
func New(prompt string, trace bool) *Repl {
	return &Repl{Prompt: prompt, trace: trace}
}

func (r *Repl) printBanner(w io.Writer) {
	lineColor.Fprintln(w, strings.Repeat("-", 40))
	bannerColor.Fprintln(w, banner)
	lineColor.Fprintln(w, strings.Repeat("-", 40))
	infoColor.Fprintln(w, "Type vellum source and press enter. Type '.exit' to quit, '.ast' to toggle AST tracing.")
}

// Start runs the REPL loop until the user exits or input ends.
func (r *Repl) Start(w io.Writer) error {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	ev := eval.New()
	ev.SetWriter(w)

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(w, "\n")
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}
		if line == ".ast" {
			r.trace = !r.trace
			infoColor.Fprintf(w, "AST tracing %s\n", onOff(r.trace))
			continue
		}
		rl.SaveHistory(line)
		r.evalLine(w, ev, line)
	}
}

func (r *Repl) evalLine(w io.Writer, ev *eval.Evaluator, line string) {
	toks, err := lexer.New(line).Tokens()
	if err != nil {
		errorColor.Fprintf(w, "Lexing Error: %v\n", err)
		return
	}
	stmts, err := parser.New(toks).Parse()
	if err != nil {
		errorColor.Fprintf(w, "Parsing Error: %v\n", err)
		return
	}
	if r.trace {
		infoColor.Fprint(w, printer.Print(stmts))
	}
	if err := ev.Run(stmts); err != nil {
		errorColor.Fprintf(w, "Runtime Error: %v\n", err)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
