package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <code>",
	Short: "Compile and run an inline expression in one step",
	Long:  `eval is the CLI-level convenience wrapper around pkg/lyng's Eval (§6 eval()).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	engine, err := newEngineFromFlags(cmd)
	if err != nil {
		return err
	}
	result, err := engine.Eval(context.Background(), args[0])
	if err != nil {
		printCompileError(os.Stderr, err)
		return fmt.Errorf("evaluation failed")
	}
	fmt.Print(result.Output)
	if s, serr := result.Value.ToString(nil); serr == nil {
		fmt.Println(s)
	}
	return nil
}
