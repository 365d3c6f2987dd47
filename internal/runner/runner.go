// Package runner wires the Scanner -> Parser -> Resolver -> Evaluator
// pipeline together, shared by the file and REPL entry points in cmd/glox.
package runner

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/letung3105/glox/internal/ast"
	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/interp"
	"github.com/letung3105/glox/internal/lexer"
	"github.com/letung3105/glox/internal/parser"
	"github.com/letung3105/glox/internal/resolver"
)

// Run scans, parses, resolves, and (if no static error occurred)
// evaluates source against in, reporting every diagnostic to reporter.
// It implements spec.md §7's propagation policy: static errors (scan,
// parse, resolve) short-circuit evaluation entirely. If astOut is
// non-nil, every top-level expression statement's parsed tree is also
// printed there (the `--print-ast` debug flag), regardless of whether
// resolution or evaluation subsequently fails.
func Run(source string, in *interp.Interpreter, reporter *diagnostics.ColorReporter, astOut io.Writer) {
	tokens, err := lexer.New(source).Scan()
	if err != nil {
		reporter.ReportAll(err)
	}
	if reporter.HadError() {
		return
	}

	stmts, err := parser.New(tokens).Parse()
	if err != nil {
		reporter.ReportAll(err)
	}
	if reporter.HadError() {
		return
	}

	if astOut != nil {
		for _, stmt := range stmts {
			if exprStmt, ok := stmt.(*ast.ExprStmt); ok {
				fmt.Fprintln(astOut, ast.Print(exprStmt.Expr))
			}
		}
	}

	locals, err := resolver.New().Resolve(stmts)
	if err != nil {
		reporter.ReportAll(err)
	}
	if reporter.HadError() {
		return
	}
	in.SetLocals(locals)

	if err := in.Interpret(stmts); err != nil {
		logrus.WithField("component", "interp").Debugf("runtime error: %v", err)
		reporter.Report(err)
	}
}
