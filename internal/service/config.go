package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xolan/chronos/internal/config"
)

// Config keys accepted by Set
const (
	KeyDataDir    = "data_dir"
	KeyDebounceMS = "debounce_ms"
	KeyTimezone   = "timezone"
	KeyTheme      = "theme"
	KeyDebug      = "debug"
)

// ConfigKeys lists the settable keys in display order
var ConfigKeys = []string{KeyDataDir, KeyDebounceMS, KeyTimezone, KeyTheme, KeyDebug}

// ErrUnknownConfigKey is returned by Set for a key not in ConfigKeys
var ErrUnknownConfigKey = errors.New("unknown config key")

// ConfigService owns the effective configuration. Single keys are parsed and
// validated here before anything is written to the config file.
type ConfigService struct {
	mu   sync.RWMutex
	path string
	cfg  config.Config
}

// NewConfigService creates a ConfigService for the file at path, starting
// from cfg.
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.path
}

// Exists reports whether the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Debounce is how long a new session waits before saving typed text.
func (s *ConfigService) Debounce() time.Duration {
	return s.Get().Debounce()
}

// AppliesOnRestart reports whether a change to key only takes effect the next
// time chronos starts. The store location, the day boundary and logging are
// fixed once the services are open; debounce_ms applies to the next session
// and theme at once.
func AppliesOnRestart(key string) bool {
	switch key {
	case KeyDataDir, KeyTimezone, KeyDebug:
		return true
	}
	return false
}

// Set parses value for key, validates the result and writes the config file.
// It returns the configuration that was saved.
func (s *ConfigService) Set(key, value string) (config.Config, error) {
	cfg := s.Get()
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyDataDir:
		cfg.DataDir = value
	case KeyDebounceMS:
		ms, err := strconv.Atoi(value)
		if err != nil {
			return cfg, fmt.Errorf("%w: debounce_ms must be a whole number of milliseconds, got %q", config.ErrInvalidConfig, value)
		}
		cfg.DebounceMS = ms
	case KeyTimezone:
		cfg.Timezone = canonicalTimezone(value)
	case KeyTheme:
		cfg.Theme = value
	case KeyDebug:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return cfg, fmt.Errorf("%w: debug must be true or false, got %q", config.ErrInvalidConfig, value)
		}
		cfg.Debug = on
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
	}

	if err := s.Update(cfg); err != nil {
		return cfg, err
	}
	return s.Get(), nil
}

// SetTheme saves the TUI theme.
func (s *ConfigService) SetTheme(name string) error {
	_, err := s.Set(KeyTheme, name)
	return err
}

// canonicalTimezone spells the local zone "Local" whatever the input case.
func canonicalTimezone(tz string) string {
	if strings.EqualFold(tz, "local") {
		return "Local"
	}
	return tz
}

// Update validates cfg and writes it to the config file. debounce_ms must be
// set explicitly; zero is not filled in with the default.
func (s *ConfigService) Update(cfg config.Config) error {
	if cfg.DebounceMS == 0 {
		return fmt.Errorf("%w: debounce_ms must be between 1 and %d, got 0", config.ErrInvalidConfig, config.MaxDebounceMS)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.Encode(s.path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Init writes the commented sample config. An existing file is left alone.
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(config.GenerateSampleConfig()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload reads the config file again
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}
