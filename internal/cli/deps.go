package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/xolan/chronos/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is nil when LoadErr is set
	Services *service.Services
	LoadErr  error
}

// DefaultDeps creates a new Deps wired to the process streams. Services are
// opened later by Load, once flags are known.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
	}
}

// Load opens the services unless they are already set. A failure is kept in
// LoadErr and reported by Ready.
func (d *Deps) Load(opts service.Options) {
	if d.Services != nil || d.LoadErr != nil {
		return
	}
	d.Services, d.LoadErr = service.NewServices(opts)
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
	}
}

// Ready reports whether the services are usable. Otherwise it prints the load
// error and exits with status 1.
func (d *Deps) Ready() bool {
	if d.Services != nil {
		return true
	}
	err := d.LoadErr
	if err == nil {
		err = fmt.Errorf("services not initialized")
	}
	_, _ = fmt.Fprintln(d.Stderr, "Error: Failed to open the journal")
	_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintln(d.Stderr, "Hint: Check that your config file is valid TOML and that the data directory is writable")
	d.Exit(1)
	return false
}
