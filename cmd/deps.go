package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps = cli.Deps

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return cli.DefaultDeps()
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// ready opens the services from the global flags on first use and reports
// whether they can be used. On failure the error has already been printed.
func ready() bool {
	deps.Load(service.Options{ConfigPath: configPath, Debug: debugMode})
	return deps.Ready()
}

// withServices adapts a handler into a cobra Run func that only runs once the
// services are open.
func withServices(fn func(d *Deps, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if !ready() {
			return
		}
		fn(deps, cmd, args)
	}
}
