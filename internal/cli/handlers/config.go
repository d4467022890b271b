package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/chronos/internal/cli"
	"github.com/xolan/chronos/internal/config"
	"github.com/xolan/chronos/internal/service"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	_, _ = fmt.Fprintf(deps.Stdout, "data_dir:    %s\n", dataDir)
	_, _ = fmt.Fprintf(deps.Stdout, "store:       %s\n", deps.Services.Store.BasePath())
	_, _ = fmt.Fprintf(deps.Stdout, "debounce_ms: %d\n", cfg.DebounceMS)
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:    %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:       %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "debug:       %t\n", cfg.Debug)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

// SetConfig changes a single setting and saves the config file
func SetConfig(deps *cli.Deps, key, value string) {
	cfg, err := deps.Services.Config.Set(key, value)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		switch {
		case errors.Is(err, service.ErrUnknownConfigKey):
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Settable keys are %s\n", strings.Join(service.ConfigKeys, ", "))
		case errors.Is(err, config.ErrInvalidConfig):
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'chronos config' to see the current values")
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %s in %s\n", key, configValue(cfg, key), deps.Services.Config.GetPath())
	if service.AppliesOnRestart(key) {
		_, _ = fmt.Fprintln(deps.Stdout, "Takes effect the next time chronos starts")
	}
}

// configValue renders the saved value of key
func configValue(cfg config.Config, key string) string {
	switch key {
	case service.KeyDataDir:
		if cfg.DataDir == "" {
			return "(default)"
		}
		return cfg.DataDir
	case service.KeyDebounceMS:
		return fmt.Sprintf("%d", cfg.DebounceMS)
	case service.KeyTimezone:
		return cfg.Timezone
	case service.KeyTheme:
		return cfg.Theme
	case service.KeyDebug:
		return fmt.Sprintf("%t", cfg.Debug)
	}
	return ""
}
