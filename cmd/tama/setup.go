package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/logging"
	"github.com/vovakirdan/tama/internal/storage"
)

// loadConfig loads the config file and applies the global flags.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	if flagFPS > 0 {
		cfg.Engine.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Engine.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagJournal {
		cfg.Journal.Enabled = true
	}
	if flagDBPath != "" {
		cfg.Journal.Path = flagDBPath
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, source, err
		}
		config.ApplyFlappyPreset(&cfg.Flappy, preset)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, source, err
	}
	return cfg, source, nil
}

// newLogger builds the logger and the on-screen log buffer.
func newLogger(cfg config.Config, out io.Writer) (*log.Logger, *logging.Buffer, error) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging.level: %w", err)
	}
	capture, err := logging.ParseLevel(cfg.Logging.CaptureLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("logging.capture_level: %w", err)
	}

	logger, buf := logging.New(logging.Options{
		Output:     out,
		Level:      level,
		Prefix:     "tama",
		Timestamps: true,
	})
	buf.SetMinLevel(capture)
	return logger, buf, nil
}

// openJournal opens the journal database when recording is enabled. A
// journal that cannot be opened is logged and skipped.
func openJournal(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.Journal.Enabled {
		return nil
	}
	store, err := storage.Open(config.ExpandHome(cfg.Journal.Path))
	if err != nil {
		logger.Warn("could not open journal database", "err", err)
		return nil
	}
	return store
}

// openStore opens the journal database for reading.
func openStore(cfg config.Config) (*storage.Store, error) {
	return storage.Open(config.ExpandHome(cfg.Journal.Path))
}

// rootArg returns the optional scene argument.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
