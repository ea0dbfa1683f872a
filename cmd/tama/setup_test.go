package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tama/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig, flagFPS, flagSeed = "", 0, 0
		flagLogLevel, flagJournal, flagDBPath, flagDifficulty = "", false, "", ""
	})
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	resetFlags(t)

	path := filepath.Join(t.TempDir(), "tama.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  tick_rate: 20\n  root_scene: menu\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagConfig = path
	flagSeed = 99
	flagJournal = true
	flagDBPath = "/tmp/j.db"
	flagDifficulty = "hard"

	cfg, source, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Engine.TickRate != 20 || cfg.Engine.RootScene != "menu" {
		t.Errorf("file values not applied: %+v", cfg.Engine)
	}
	if cfg.Engine.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Engine.Seed)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/tmp/j.db" {
		t.Errorf("journal flags not applied: %+v", cfg.Journal)
	}
	if !cfg.Flappy.Difficulty.Enabled || cfg.Flappy.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Flappy.Difficulty)
	}

	flagFPS = 60
	cfg, _, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Engine.TickRate != 60 {
		t.Errorf("--fps not applied: %d", cfg.Engine.TickRate)
	}
}

func TestLoadConfigRejectsBadDifficulty(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "tama.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  tick_rate: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	flagConfig = path
	flagDifficulty = "nightmare"

	if _, _, err := loadConfig(); err == nil {
		t.Error("expected an error")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "loud"
	if _, _, err := newLogger(cfg, io.Discard); err == nil {
		t.Error("expected an error for an unknown level")
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.CaptureLevel = "warn"
	logger, buf, err := newLogger(cfg, io.Discard)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if buf.Len() != 1 {
		t.Errorf("buffer has %d entries, want 1", buf.Len())
	}
}
