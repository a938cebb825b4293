package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sergeych/lyng/pkg/lyng"
)

// newEngineFromFlags builds an Engine honouring the --perf-config
// persistent flag (§4.6 WithConfigFile), shared by every subcommand that
// runs a script.
func newEngineFromFlags(cmd *cobra.Command) (*lyng.Engine, error) {
	path, _ := cmd.Flags().GetString("perf-config")
	if path == "" {
		return lyng.New()
	}
	return lyng.New(lyng.WithConfigFile(path))
}
