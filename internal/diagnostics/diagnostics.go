// Package diagnostics implements glox's error taxonomy and reporting.
// It generalizes the teacher's reporter.go (Reporter/SimpleReporter) into
// the fuller kind set of spec.md §7: ScanError, ParseError, ResolveError,
// RuntimeError, and AssertionError, plus a colorized Reporter and
// multierror-backed collectors for the scanner/parser/resolver passes
// (which must surface every problem in a run, not just the first).
package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/letung3105/glox/internal/token"
)

// ScanError is a lexical error tied only to a source line.
type ScanError struct {
	Line    int
	Message string
}

func NewScanError(line int, message string) *ScanError {
	return &ScanError{Line: line, Message: message}
}

func (e *ScanError) Error() string {
	return formatReport(e.Line, "", e.Message)
}

// ParseError is a syntax error tied to the offending token.
type ParseError struct {
	Tok     *token.Token
	Message string
}

func NewParseError(tok *token.Token, message string) *ParseError {
	return &ParseError{Tok: tok, Message: message}
}

func (e *ParseError) Error() string {
	return formatReport(e.Tok.Line, where(e.Tok), e.Message)
}

// ResolveError is a static scoping error found by the resolver.
type ResolveError struct {
	Tok     *token.Token
	Message string
}

func NewResolveError(tok *token.Token, message string) *ResolveError {
	return &ResolveError{Tok: tok, Message: message}
}

func (e *ResolveError) Error() string {
	return formatReport(e.Tok.Line, where(e.Tok), e.Message)
}

// RuntimeError aborts the current top-level statement; the CLI exits 70.
type RuntimeError struct {
	Tok     *token.Token
	Message string
}

func NewRuntimeError(tok *token.Token, message string) *RuntimeError {
	return &RuntimeError{Tok: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Tok.Line)
}

// AssertionError is treated as a runtime error for exit-code purposes.
type AssertionError struct {
	Line    int
	Message string
}

func NewAssertionError(line int, message string) *AssertionError {
	return &AssertionError{Line: line, Message: message}
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

func where(tok *token.Token) string {
	if tok.Type == token.EOF {
		return " at end"
	}
	return " at '" + tok.Lexeme + "'"
}

func formatReport(line int, where, message string) string {
	return fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
}

// Reporter is the sink every pipeline stage reports errors to, mirroring
// the teacher's Reporter interface with HadError/HadRuntimeError gates.
type Reporter interface {
	Report(err error)
	Reset()
	HadError() bool
	HadRuntimeError() bool
}

// ColorReporter writes colorized diagnostics to an io.Writer, generalizing
// the teacher's SimpleReporter. Colors degrade gracefully: fatih/color
// turns them off when the process's stdout is not a terminal (it does
// not inspect writer), so redirecting stdout to a file or pipe produces
// the plain "[line N] Error: msg" text.
type ColorReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
}

// NewColorReporter constructs a Reporter that writes to writer.
func NewColorReporter(writer io.Writer) *ColorReporter {
	return &ColorReporter{writer: writer}
}

func (r *ColorReporter) Report(err error) {
	switch err.(type) {
	case *RuntimeError, *AssertionError:
		r.hadRuntimeErr = true
		fmt.Fprintln(r.writer, color.RedString("%s", err.Error()))
	default:
		r.hadErr = true
		fmt.Fprintln(r.writer, color.New(color.Bold, color.FgRed).Sprint(err.Error()))
	}
}

// ReportAll reports every error wrapped in a *multierror.Error individually,
// preserving the "report everything this pass found" contract of the
// scanner/parser/resolver.
func (r *ColorReporter) ReportAll(err error) {
	if err == nil {
		return
	}
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			r.Report(e)
		}
		return
	}
	r.Report(err)
}

func (r *ColorReporter) Reset() {
	r.hadErr = false
	r.hadRuntimeErr = false
}

func (r *ColorReporter) HadError() bool        { return r.hadErr }
func (r *ColorReporter) HadRuntimeError() bool { return r.hadRuntimeErr }
