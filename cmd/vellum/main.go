// Command vellum is the command-line front end: it reads a source file
// from disk, feeds it through lex -> parse -> evaluate, and reports the
// first failure with its phase prefix. The -e and -i flags layer a
// one-shot expression mode and an interactive REPL on top of file mode.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"vellum/eval"
	"vellum/lexer"
	"vellum/parser"
	"vellum/printer"
	"vellum/repl"
)

var errorColor = color.New(color.FgRed)

func main() {
	var (
		expression  = flag.String("e", "", "evaluate a single expression or statement list")
		interactive = flag.Bool("i", false, "start an interactive REPL")
		trace       = flag.Bool("p", false, "print the parsed AST before evaluating")
	)
	flag.Parse()

	switch {
	case *expression != "":
		run(*expression, os.Stdout, *trace)
	case *interactive:
		if err := repl.New("vellum> ", *trace).Start(os.Stdout); err != nil {
			errorColor.Fprintf(os.Stderr, "REPL Error: %v\n", err)
			os.Exit(1)
		}
	case flag.NArg() > 0:
		runFile(flag.Arg(0), *trace)
	default:
		fmt.Println("usage: vellum [-e expr] [-i] [-p] [file]")
	}
}

func runFile(path string, trace bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "could not read %q: %v\n", path, err)
		os.Exit(1)
	}
	run(string(src), os.Stdout, trace)
}

// run executes one program's worth of source and exits non-zero on the
// first lexical, syntactic, or runtime failure. When trace is set, the
// parsed AST is printed to stdout before evaluation begins, exactly the
// debug-tracing contract spec.md §1 allows for an out-of-scope collaborator.
func run(src string, stdout *os.File, trace bool) {
	toks, err := lexer.New(src).Tokens()
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Lexing Error: %v\n", err)
		os.Exit(1)
	}

	stmts, err := parser.New(toks).Parse()
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Parsing Error: %v\n", err)
		os.Exit(1)
	}

	if trace {
		fmt.Fprint(stdout, printer.Print(stmts))
	}

	ev := eval.New()
	ev.SetWriter(stdout)
	if err := ev.Run(stmts); err != nil {
		errorColor.Fprintf(os.Stderr, "Runtime Error: %v\n", err)
		os.Exit(1)
	}
}
