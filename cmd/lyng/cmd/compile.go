package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sergeych/lyng/internal/diag"
)

var compileShowAST bool

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Parse a script and report any lex/parse errors",
	Long: `compile lexes and parses a script without running it (§6 compile()).

There is no persisted bytecode format in this runtime: a Script is a
parsed AST, re-parsed on demand or held in memory by an embedder that
wants to Run it more than once.`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&compileShowAST, "show-ast", false, "print the parsed AST")
}

func compileScript(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	engine, err := newEngineFromFlags(cmd)
	if err != nil {
		return err
	}

	program, err := engine.Compile(args[0], string(content))
	if err != nil {
		printCompileError(os.Stderr, err)
		return fmt.Errorf("parsing failed")
	}

	if compileShowAST {
		diag.DumpAST(os.Stdout, program.AST())
	}
	fmt.Printf("%s: OK\n", args[0])
	return nil
}
