// Package host carries what the running system provides to scenes: display
// size, seeded randomness, the buzzer, loggers and configuration. It sits
// outside the scene package so the stack itself depends on nothing but its
// contracts.
package host

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/logging"
)

// LogSource exposes recently captured log entries to scenes.
type LogSource interface {
	Recent(n int) []logging.Entry
}

// Env is the explicit context a platform hands to scene factories. Nothing
// in it is global, so tests can build as many independent engines as they
// like.
type Env struct {
	Width    int
	Height   int
	TickRate int
	Seed     int64

	Output *core.Output
	Logs   LogSource
	Logger *log.Logger
	Config config.Config
}

// NewEnv creates an Env from a configuration. Output, Logs and Logger get
// harmless defaults and may be replaced by the caller.
func NewEnv(cfg config.Config, seed int64) *Env {
	return &Env{
		Width:    cfg.Display.Width,
		Height:   cfg.Display.Height,
		TickRate: cfg.Engine.TickRate,
		Seed:     seed,
		Output:   core.NewOutput(nil),
		Logs:     logging.NewBuffer(),
		Logger:   logging.Discard(),
		Config:   cfg,
	}
}

// Rand returns a random source derived from the seed and name. Two sources
// with the same seed and name produce the same sequence.
func (e *Env) Rand(name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewPCG(uint64(e.Seed), h.Sum64()))
}

// Log returns the env logger, never nil.
func (e *Env) Log() *log.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}

// TickDuration is the length of one tick at the configured rate.
func (e *Env) TickDuration() time.Duration {
	if e.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(e.TickRate)
}

// RecentLogs returns up to n captured entries, oldest first.
func (e *Env) RecentLogs(n int) []logging.Entry {
	if e.Logs == nil {
		return nil
	}
	return e.Logs.Recent(n)
}
