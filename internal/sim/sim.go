// Package sim assembles a runnable simulator session from a configuration:
// the scene Env, the root scene, the engine, the display framebuffer and the
// optional input journal. Every front-end (terminal, window, SDL, SSH, replay)
// starts its sessions here so they all drive the identical core.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/engine"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/logging"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/scene"
	"github.com/vovakirdan/tama/internal/scenes/menu"
	"github.com/vovakirdan/tama/internal/storage"
)

// Options describes one session.
type Options struct {
	Config   config.Config
	Platform string // Recorded with the journal: "tui", "window", "sdl", "ssh", "replay"
	Root     string // Registry id; Config.Engine.RootScene when empty
	Seed     int64  // Config.Engine.Seed when zero; the clock when both are zero

	Logger   *log.Logger
	Logs     *logging.Buffer
	Buzzer   core.Buzzer
	Registry *registry.Registry

	// Store enables the input journal when set.
	Store *storage.Store
}

// Session is a running simulator instance.
type Session struct {
	Env         *host.Env
	Engine      *engine.Engine
	Framebuffer *core.Framebuffer
	Canvas      *core.Canvas
	Recorder    *storage.Recorder // nil without a journal
	Root        string

	logger *log.Logger
	closed bool
}

// Start creates the session. Games are started on top of the menu so that
// leaving a game always returns somewhere.
func Start(opts Options) (*Session, error) {
	cfg := opts.Config
	root := opts.Root
	if root == "" {
		root = cfg.Engine.RootScene
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	info, ok := reg.Lookup(root)
	if !ok {
		return nil, fmt.Errorf("sim: unknown scene %q", root)
	}
	if info.Overlay {
		return nil, fmt.Errorf("sim: scene %q is an overlay and cannot be the root", root)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Engine.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logs := opts.Logs
	if logs == nil {
		logs = logging.NewBuffer()
	}

	logging.Notice(logger, "tama booting")

	env := host.NewEnv(cfg, seed)
	env.Logger = logger
	env.Logs = logs
	env.Output = core.NewOutput(opts.Buzzer)

	var first scene.Scene
	if info.Kind == registry.KindGame {
		first = menu.New(env, menu.WithRegistry(reg), menu.Launch(root))
	} else {
		s, err := reg.Create(root, env)
		if err != nil {
			return nil, fmt.Errorf("sim: %w", err)
		}
		first = s
	}

	var rec *storage.Recorder
	if opts.Store != nil {
		r, err := opts.Store.StartSession(storage.SessionInfo{
			Platform:  opts.Platform,
			RootScene: root,
			Seed:      seed,
			TickRate:  cfg.Engine.TickRate,
			Width:     cfg.Display.Width,
			Height:    cfg.Display.Height,
		})
		if err != nil {
			logger.Warn("input journal unavailable", "err", err)
		} else {
			rec = r
		}
	}

	engOpts := engine.Options{
		TickRate:    cfg.Engine.TickRate,
		Logger:      logger,
		TimingEvery: cfg.Engine.TimingEvery,
	}
	if rec != nil {
		engOpts.Recorder = rec
	}
	eng, err := engine.New(first, engOpts)
	if err != nil {
		if rec != nil {
			_ = rec.End(err.Error())
		}
		return nil, err
	}

	fb := core.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
	s := &Session{
		Env:         env,
		Engine:      eng,
		Framebuffer: fb,
		Canvas:      core.NewCanvas(fb),
		Recorder:    rec,
		Root:        root,
		logger:      logger,
	}

	attrs := []any{"platform", opts.Platform, "root", root, "seed", seed}
	if rec != nil {
		attrs = append(attrs, "journal", rec.ID())
	}
	logger.Info("session started", attrs...)
	return s, nil
}

// Frame renders the active scene into the framebuffer and returns it.
func (s *Session) Frame() *core.Framebuffer {
	s.Engine.Render(s.Canvas)
	return s.Framebuffer
}

// Close stops the session and ends the journal entry with the reason, which
// is the fatal error text when the engine halted.
func (s *Session) Close(reason string) error {
	if s.closed {
		return nil
	}
	s.closed = true

	if halted := s.Engine.Halted(); halted != nil {
		reason = halted.Error()
	}
	var errs []error
	if err := s.Engine.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.Recorder != nil {
		if err := s.Recorder.End(reason); err != nil {
			errs = append(errs, err)
		}
	}
	s.logger.Info("session ended", "reason", reason, "ticks", s.Engine.TickCount())
	return errors.Join(errs...)
}

// Replay starts a session with the recorded setup of journal entry id and
// feeds it every recorded tick. opts.Store is ignored; the replay itself is
// not journaled.
func Replay(src *storage.Store, id int64, opts Options) (*Session, error) {
	rec, ticks, err := src.LoadTicks(id)
	if err != nil {
		return nil, err
	}

	opts.Config.Engine.TickRate = rec.TickRate
	opts.Config.Display.Width = rec.Width
	opts.Config.Display.Height = rec.Height
	opts.Root = rec.RootScene
	opts.Seed = rec.Seed
	opts.Store = nil
	if opts.Platform == "" {
		opts.Platform = "replay"
	}

	s, err := Start(opts)
	if err != nil {
		return nil, err
	}
	if err := s.Engine.Run(ticks); err != nil {
		return s, fmt.Errorf("sim: replay of session %d stopped at tick %d: %w", id, s.Engine.TickCount(), err)
	}
	return s, nil
}
