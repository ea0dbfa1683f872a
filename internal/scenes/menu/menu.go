// Package menu is the game picker shown after the self test.
package menu

import (
	"time"

	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/scene"
)

// Scene lists the registered games. A pushes the selected game; the menu
// stays underneath, so B in a game always has somewhere to go back to.
type Scene struct {
	env    *host.Env
	reg    *registry.Registry
	games  []registry.Info
	cursor int
	launch string
}

// Option configures the menu.
type Option func(*Scene)

// WithRegistry lists games from r instead of the default registry.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Scene) { s.reg = r }
}

// Launch makes the menu push the given game on its first update.
func Launch(id string) Option {
	return func(s *Scene) { s.launch = id }
}

// New creates a menu.
func New(env *host.Env, opts ...Option) *Scene {
	s := &Scene{env: env, reg: registry.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.games = s.reg.Games()
	return s
}

// Name implements scene.Scene.
func (s *Scene) Name() string { return "menu" }

// Cursor returns the index of the selected game.
func (s *Scene) Cursor() int { return s.cursor }

// Selected returns the selected game, if any.
func (s *Scene) Selected() (registry.Info, bool) {
	if len(s.games) == 0 {
		return registry.Info{}, false
	}
	return s.games[s.cursor], true
}

// Update implements scene.Scene.
func (s *Scene) Update(in input.Snapshot, _ time.Duration) scene.Transition {
	if s.launch != "" {
		id := s.launch
		s.launch = ""
		for i, g := range s.games {
			if g.ID == id {
				s.cursor = i
			}
		}
		return s.start(id)
	}

	if len(s.games) == 0 {
		return scene.Stay()
	}

	switch {
	case in.JustPressed(input.Up):
		s.cursor = (s.cursor + len(s.games) - 1) % len(s.games)
	case in.JustPressed(input.Down):
		s.cursor = (s.cursor + 1) % len(s.games)
	case in.JustPressed(input.A):
		return s.start(s.games[s.cursor].ID)
	}
	return scene.Stay()
}

func (s *Scene) start(id string) scene.Transition {
	next, err := s.reg.Create(id, s.env)
	if err != nil {
		s.env.Log().Error("cannot start game", "game", id, "err", err)
		return scene.Stay()
	}
	s.env.Log().Info("starting game", "game", id)
	return scene.PushScene(next)
}

// Resume implements scene.Resumer.
func (s *Scene) Resume(from scene.Scene) {
	s.env.Log().Info("back in menu", "from", from.Name())
}

// Render implements scene.Scene.
func (s *Scene) Render(dst core.Surface) {
	dst.Clear(core.White)

	lh := dst.LineHeight()
	core.DrawTextCentered(dst, lh, "tama", core.Black)
	dst.DrawLine(8, lh*2+4, dst.Width()-9, lh*2+4, core.Gray)

	if len(s.games) == 0 {
		core.DrawTextCentered(dst, dst.Height()/2, "no games", core.Gray)
		return
	}

	y := lh * 3
	for i, g := range s.games {
		if i == s.cursor {
			dst.FillRect(core.NewRect(8, y-2, dst.Width()-16, lh+4), core.Black)
			core.DrawTextCentered(dst, y, g.Title, core.White)
		} else {
			core.DrawTextCentered(dst, y, g.Title, core.Black)
		}
		y += lh + 6
	}

	core.DrawTextCentered(dst, dst.Height()-lh*2, "Press A to start", core.Gray)
}

func init() {
	registry.Register("menu", registry.Info{Title: "Menu", Kind: registry.KindSystem},
		func(env *host.Env) scene.Scene { return New(env) })
}
