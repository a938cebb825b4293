package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/sergeych/lyng/cmd/lyng/cmd"
)

// TestMain lets `go test` also serve as the lyng binary inside each
// testscript subprocess, the same arrangement cue/cmd/cue uses to drive
// its own CLI fixtures without a separately built executable.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"lyng": runMain,
	}))
}

func runMain() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
