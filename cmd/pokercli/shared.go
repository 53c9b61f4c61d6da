package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pokermania/pokercli/internal/config"
)

// loadConfig reads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newFileLogger opens the configured log file. Logging goes to a file
// rather than stderr so it does not fight the TUI for the terminal.
func newFileLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	f, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger, f, nil
}
