// Package pause implements the pause overlay pushed by games.
package pause

import (
	"time"

	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/scene"
)

const (
	itemResume = iota
	itemQuit
)

var items = [...]string{"Resume", "Quit"}

// Scene is a two-entry menu. It always pops itself; the parent reads
// QuitRequested from its Resume hook.
type Scene struct {
	cursor int
	quit   bool
}

// New creates a pause overlay with Resume selected.
func New() *Scene {
	return &Scene{}
}

// Name implements scene.Scene.
func (s *Scene) Name() string { return "pause" }

// QuitRequested reports whether the player chose Quit.
func (s *Scene) QuitRequested() bool { return s.quit }

// Cursor returns the selected entry.
func (s *Scene) Cursor() int { return s.cursor }

// Update implements scene.Scene.
func (s *Scene) Update(in input.Snapshot, _ time.Duration) scene.Transition {
	switch {
	case in.JustPressed(input.Up):
		s.cursor = (s.cursor + len(items) - 1) % len(items)
	case in.JustPressed(input.Down):
		s.cursor = (s.cursor + 1) % len(items)
	case in.JustPressed(input.A):
		s.quit = s.cursor == itemQuit
		return scene.PopScene()
	case in.JustPressed(input.B):
		s.quit = false
		return scene.PopScene()
	}
	return scene.Stay()
}

// Render implements scene.Scene.
func (s *Scene) Render(dst core.Surface) {
	dst.Clear(core.Black)

	lh := dst.LineHeight()
	boxW := dst.Width() * 2 / 3
	boxH := lh * 6
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, core.White)

	core.DrawTextCentered(dst, box.Y+lh/2, "PAUSED", core.Yellow)
	for i, label := range items {
		col := core.Gray
		if i == s.cursor {
			col = core.White
			label = "> " + label + " <"
		}
		core.DrawTextCentered(dst, box.Y+lh*(2+i*2), label, col)
	}
}

func init() {
	registry.Register("pause", registry.Info{Title: "Pause", Kind: registry.KindSystem, Overlay: true},
		func(*host.Env) scene.Scene { return New() })
}
