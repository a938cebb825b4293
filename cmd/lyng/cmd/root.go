package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lyng",
	Short: "Run and inspect lyng scripts",
	Long: `lyng is the reference embedder for the Script Language (SL) runtime:
a small dynamically-typed, class-based language with first-class
functions, operator overloading, and a cooperative suspension model.

This CLI wraps pkg/lyng, the same embedding API any Go host program
would use to run SL scripts.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("perf-config", "", "YAML file overriding the performance-flag table")
}
