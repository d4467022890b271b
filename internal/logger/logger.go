// Package logger builds the application logger: charmbracelet/log writing to a
// rotating file, mirrored to stderr in debug mode.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the rotating log file inside the log directory
const LogFile = "chronos.log"

// Config holds logger configuration
type Config struct {
	Debug  bool
	Dir    string    // directory for the rotating log file; empty disables the file
	Stderr io.Writer // mirror target in debug mode; defaults to os.Stderr
}

// New creates a logger for cfg.
// Warn level by default, debug level (with caller info) when cfg.Debug is set.
func New(cfg Config) (*log.Logger, error) {
	var writers []io.Writer

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, LogFile),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	return log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "chronos",
	}), nil
}

// Discard returns a logger that drops everything. Used as the default for
// components constructed without a logger, and in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
