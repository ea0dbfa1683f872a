// Package selftest is the boot scene: it shows the captured boot log, then
// the splash with a short tune, then hands over to the menu.
package selftest

import (
	"strings"
	"time"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/logging"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/scene"
)

// Splash is the text shown after the log phase.
const Splash = "Rough Rat"

// Phase is the current stage of the self test.
type Phase int

const (
	PhaseLogs Phase = iota
	PhaseSplash
	PhaseDone
)

// Scene runs the self test.
type Scene struct {
	env     *host.Env
	cfg     config.SelftestConfig
	create  func(id string) (scene.Scene, error)
	elapsed time.Duration
	entries []logging.Entry
	notes   int
	done    bool
}

// New creates the self test for env.
func New(env *host.Env) *Scene {
	return &Scene{
		env: env,
		cfg: env.Config.Selftest,
		create: func(id string) (scene.Scene, error) {
			return registry.Create(id, env)
		},
	}
}

// Name implements scene.Scene.
func (s *Scene) Name() string { return "selftest" }

// Enter implements scene.Enterer. The log is captured here so the first
// frame is not empty.
func (s *Scene) Enter() {
	s.env.Log().Info("self test", "display", s.env.Width, "x", s.env.Height, "tick_rate", s.env.TickRate)
	s.entries = s.env.RecentLogs(s.cfg.MaxLogLines)
}

// Phase reports the current stage.
func (s *Scene) Phase() Phase {
	switch {
	case s.done:
		return PhaseDone
	case s.elapsed < s.logDisplay():
		return PhaseLogs
	default:
		return PhaseSplash
	}
}

// NotesPlayed returns the number of buzzer ticks issued so far.
func (s *Scene) NotesPlayed() int { return s.notes }

func (s *Scene) logDisplay() time.Duration {
	return time.Duration(s.cfg.LogDisplayMs) * time.Millisecond
}

func (s *Scene) finalDelay() time.Duration {
	return time.Duration(s.cfg.FinalDelayMs) * time.Millisecond
}

// Update implements scene.Scene.
func (s *Scene) Update(_ input.Snapshot, dt time.Duration) scene.Transition {
	if s.done {
		return scene.Stay()
	}
	s.elapsed += dt

	if s.elapsed < s.logDisplay() {
		s.entries = s.env.RecentLogs(s.cfg.MaxLogLines)
		return scene.Stay()
	}

	tpn := max(s.cfg.TicksPerNote, 1)
	total := len(s.cfg.Tune) * tpn
	if s.notes < total {
		freq := s.cfg.Tune[s.notes/tpn]
		s.env.Output.PlayTone(uint32(freq), uint32(s.cfg.NoteMs))
		s.notes++
		if s.notes >= total {
			return s.next()
		}
	}

	if s.elapsed >= s.logDisplay()+s.finalDelay() {
		return s.next()
	}
	return scene.Stay()
}

func (s *Scene) next() scene.Transition {
	s.done = true
	id := s.cfg.Next
	if id == "" {
		id = "menu"
	}
	next, err := s.create(id)
	if err != nil {
		s.env.Log().Error("self test cannot continue", "next", id, "err", err)
		return scene.Stay()
	}
	return scene.ReplaceWith(next)
}

// Render implements scene.Scene.
func (s *Scene) Render(dst core.Surface) {
	dst.Clear(core.Black)

	if s.Phase() != PhaseLogs {
		core.DrawTextCentered(dst, dst.Height()/2, Splash, core.Red)
		return
	}

	lh := dst.LineHeight()
	y := 2
	for _, e := range s.entries {
		for i, part := range strings.Split(e.Message, "\n") {
			if y+lh > dst.Height() {
				return
			}
			line := "    " + part
			if i == 0 {
				line = "[" + e.Level.Prefix() + "] " + part
			}
			dst.DrawText(2, y, line, core.Red)
			y += lh
		}
	}
}

func init() {
	registry.Register("selftest", registry.Info{Title: "Self test", Kind: registry.KindSystem},
		func(env *host.Env) scene.Scene { return New(env) })
}
