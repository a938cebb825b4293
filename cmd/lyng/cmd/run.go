package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sergeych/lyng/internal/diag"
	"github.com/sergeych/lyng/internal/eval"
	"github.com/sergeych/lyng/internal/lexer"
	"github.com/sergeych/lyng/internal/parser"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or inline expression",
	Long: `Execute a script from a file or an inline expression.

Examples:
  lyng run script.sl
  lyng run -e "println(\"hello\")"
  lyng run --dump-ast script.sl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print the terminal value's structured form after running")
}

func runScript(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	engine, err := newEngineFromFlags(cmd)
	if err != nil {
		return err
	}

	program, err := engine.Compile(name, src)
	if err != nil {
		printCompileError(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}

	if dumpAST {
		diag.DumpAST(os.Stdout, program.AST())
	}

	result, err := engine.Run(context.Background(), program)
	if err != nil {
		if ee, ok := err.(*eval.ExecutionError); ok {
			fmt.Fprintln(os.Stderr, ee.Error())
			return fmt.Errorf("execution failed")
		}
		return err
	}

	fmt.Print(result.Output)
	if trace {
		fmt.Fprintln(os.Stderr, diag.Sprint(result.Value))
	}
	return nil
}

func readSource(inline string, args []string) (src, name string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

// printCompileError renders a LexError/ParseError with source context and
// a caret, the go-dws internal/errors convention (file:line:col header,
// source line, caret, message).
func printCompileError(w *os.File, err error) {
	switch e := err.(type) {
	case *lexer.Error:
		fmt.Fprintln(w, (&diag.SourceError{Message: e.Message, Pos: e.Pos}).Format(true))
	case *parser.Error:
		fmt.Fprintln(w, (&diag.SourceError{Message: e.Message, Pos: e.Pos}).Format(true))
	case parser.ErrorList:
		for _, perr := range e {
			fmt.Fprintln(w, (&diag.SourceError{Message: perr.Message, Pos: perr.Pos}).Format(true))
		}
	default:
		fmt.Fprintln(w, err)
	}
}
