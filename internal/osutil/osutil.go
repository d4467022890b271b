// Package osutil provides abstractions for OS-level operations to enable testing.
package osutil

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under the user config directory.
const AppName = "chronos"

// PathProvider abstracts OS-level operations for path resolution.
// Config, storage and log paths all resolve through it so tests can force failures.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns <UserConfigDir>/chronos joined with sub, creating it if needed.
func AppDir(sub ...string) (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(append([]string{configDir, AppName}, sub...)...)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
