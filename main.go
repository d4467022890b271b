package main

import (
	"os"

	"github.com/xolan/chronos/cmd"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is os.Exit, swapped out in tests
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run executes the root command and returns the process exit code
func run() int {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
