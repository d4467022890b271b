package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xolan/chronos/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DataDirName is the default directory (under the app dir) holding the store
	DataDirName = "data"

	// DefaultDebounceMS is the quiet period before a text edit is persisted
	DefaultDebounceMS = 500
	// MaxDebounceMS caps debounce_ms so a typo can't disable auto-save for minutes
	MaxDebounceMS = 10000
	// DefaultTheme is the bubbletint id used when no theme is configured
	DefaultTheme = "dracula"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	// DataDir is where the journal store lives. Empty means <config dir>/chronos/data.
	DataDir string `toml:"data_dir"`
	// DebounceMS is how long text edits wait before being saved as a draft.
	DebounceMS int `toml:"debounce_ms"`
	// Timezone decides which calendar day is "today" (IANA name or "Local").
	Timezone string `toml:"timezone"`
	// Theme is the TUI color theme.
	Theme string `toml:"theme"`
	// Debug enables debug logging, including corrupt record reports.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns a Config with the defaults used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:    "",
		DebounceMS: DefaultDebounceMS,
		Timezone:   "Local",
		Theme:      DefaultTheme,
		Debug:      false,
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	appDir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, returning DefaultConfig if it doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize trims values and fills zero values with defaults.
func (c *Config) Normalize() {
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))

	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.DebounceMS == 0 {
		c.DebounceMS = DefaultDebounceMS
	}
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.DebounceMS < 1 || c.DebounceMS > MaxDebounceMS {
		return fmt.Errorf("%w: debounce_ms must be between 1 and %d, got %d", ErrInvalidConfig, MaxDebounceMS, c.DebounceMS)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return nil
}

// Location resolves Timezone. "Local" (or empty) maps to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Debounce returns DebounceMS as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// ResolveDataDir returns DataDir, or the default data directory when unset.
// The directory is created if missing.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir == "" {
		return osutil.AppDir(DataDirName)
	}
	dir := c.DataDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, dir[2:])
	}
	if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GenerateSampleConfig returns a commented config file with default values.
func GenerateSampleConfig() string {
	return fmt.Sprintf(`# chronos configuration file

# Where the journal store lives. Leave empty for the default location.
data_dir = ""

# Milliseconds to wait after the last keystroke before saving the draft text.
debounce_ms = %d

# Timezone that decides when a day rolls over: IANA name (e.g. "Europe/Berlin") or "Local"
timezone = "Local"

# TUI color theme (any bubbletint id)
theme = %q

# Debug logging (also reports corrupt records)
debug = false
`, DefaultDebounceMS, DefaultTheme)
}

// Encode writes cfg as TOML.
func Encode(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return toml.NewEncoder(f).Encode(cfg)
}
