// Command glox is the Lox interpreter CLI: `glox` for a REPL, or
// `glox <script>` to run a file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/spf13/cobra"

	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/interp"
	"github.com/letung3105/glox/internal/runner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// usageError carries the exit(64) "bad invocation" case through cobra's
// normal error channel without it being mistaken for a parse/runtime error.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// exitErr lets RunE report the exit code the interpreter itself decided on
// (65 for a static error, 70 for a runtime error) without cobra printing
// redundant usage text for what is not a CLI misuse.
type exitErr struct{ code int }

func (e *exitErr) Error() string { return "" }

func exitCodeFor(err error) int {
	switch e := err.(type) {
	case *usageError:
		fmt.Fprintln(os.Stderr, e.msg)
		return 64
	case *exitErr:
		return e.code
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	var printAST bool

	cmd := &cobra.Command{
		Use:   "glox [script]",
		Short: "glox is a tree-walking interpreter for the Lox language",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &usageError{msg: "Usage: glox [script]"}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			var astOut io.Writer
			if printAST {
				astOut = cmd.OutOrStdout()
			}
			if len(args) == 1 {
				return runFile(args[0], cmd.OutOrStdout(), astOut)
			}
			return runPrompt(cmd.OutOrStdout(), astOut)
		},
	}
	cmd.Flags().BoolVar(&printAST, "print-ast", false, "print the parsed expression tree for each top-level expression statement")
	_ = cmd.Flags().MarkHidden("print-ast")
	return cmd
}

func setupLogging() {
	logrus.SetLevel(logrus.WarnLevel)
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "15:04:05",
		LogFormat:       "[%lvl%] %msg%\n",
	})
}

func runFile(fpath string, stdout io.Writer, astOut io.Writer) error {
	bytes, err := os.ReadFile(fpath)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	reporter := diagnostics.NewColorReporter(stdout)
	in := interp.New(stdout, false)
	runner.Run(string(bytes), in, reporter, astOut)

	switch {
	case reporter.HadError():
		return &exitErr{code: 65}
	case reporter.HadRuntimeError():
		return &exitErr{code: 70}
	default:
		return nil
	}
}

// runPrompt runs the REPL: one line per iteration, each with a fresh
// diagnostics state (spec.md §7: "the REPL clears had_error between
// lines"), terminated by EOF, an interrupt, an empty line, or the literal
// line "exit".
func runPrompt(stdout io.Writer, astOut io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	defer rl.Close()

	in := interp.New(stdout, true)
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		if line == "" || line == "exit" {
			return nil
		}
		reporter := diagnostics.NewColorReporter(stdout)
		runner.Run(line, in, reporter, astOut)
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.glox_history"
}
