package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrace/internal/config"
)

// newLogger creates the CLI logger. Debug output is enabled by --verbose.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "carrace",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// sessionLogger returns a logger that stays off the terminal while Bubble Tea
// owns it: --log-file if given, otherwise nothing.
func sessionLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return newLogger(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f), func() { _ = f.Close() }, nil
}

// loadConfig resolves the configuration from the search order and applies
// the --difficulty preset.
func loadConfig(logger *log.Logger) (config.RaceConfig, string, error) {
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return config.RaceConfig{}, "", err
	}

	source, data, err := config.Locate(flagConfig)
	if err != nil {
		return config.RaceConfig{}, source, err
	}
	cfg, err := config.Parse(data, source)
	if err != nil {
		return config.RaceConfig{}, source, err
	}
	logger.Debug("loaded configuration", "source", source)

	if preset != "" {
		config.ApplyRacePreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return config.RaceConfig{}, source, err
		}
		logger.Debug("applied difficulty preset", "preset", preset)
	}
	return cfg, source, nil
}
