package service

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/xolan/chronos/internal/config"
	"github.com/xolan/chronos/internal/logger"
	"github.com/xolan/chronos/internal/storage"
	"github.com/xolan/chronos/internal/timer"
)

// LogDir is the log directory under the data dir
const LogDir = "logs"

// Services holds all service instances used by the application
type Services struct {
	Journal *JournalService
	Stats   *StatsService
	Report  *ReportService
	Config  *ConfigService
	Store   *storage.DiskStore
	Logger  *log.Logger
	Source  timer.Source
}

// Options tweaks NewServices
type Options struct {
	ConfigPath string // defaults to config.GetConfigPath()
	Debug      bool   // forces debug logging on top of the config file
}

// NewServices loads the config, opens the store and wires everything up
func NewServices(opts Options) (*Services, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		cfg.Debug = true
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}

	lg, err := logger.New(logger.Config{Debug: cfg.Debug, Dir: filepath.Join(dataDir, LogDir)})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	store, err := storage.Open(dataDir, lg)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(store, timer.NewReal(loc), configPath, cfg, lg), nil
}

// NewServicesWithStore creates a new Services instance around an open store (useful for testing)
func NewServicesWithStore(store *storage.DiskStore, src timer.Source, configPath string, cfg config.Config, lg *log.Logger) *Services {
	if lg == nil {
		lg = logger.Discard()
	}

	return &Services{
		Journal: NewJournalService(store, src, lg),
		Stats:   NewStatsService(store),
		Report:  NewReportService(store),
		Config:  NewConfigService(configPath, cfg),
		Store:   store,
		Logger:  lg,
		Source:  src,
	}
}

// NewSession creates an editing session using the configured debounce delay
func (s *Services) NewSession() *Session {
	return NewSession(s.Journal, SessionOptions{
		Source:   s.Source,
		Debounce: s.Config.Debounce(),
		Logger:   s.Logger,
	})
}
