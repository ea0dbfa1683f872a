// Package dvd is the bouncing ball demo.
package dvd

import (
	"time"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/scene"
)

// Scene bounces a ball between the screen edges. The ball changes colour on
// every bounce; B goes back.
type Scene struct {
	width, height int
	x, y          int
	velX, velY    int
	radius        int
	bounces       int
}

// New creates the demo with the ball in the middle of a width x height
// screen.
func New(width, height int, cfg config.DvdConfig) *Scene {
	speed := max(cfg.Speed, 1)
	radius := core.Clamp(cfg.Radius, 1, min(width, height)/2-1)
	return &Scene{
		width:  width,
		height: height,
		x:      width / 2,
		y:      height / 2,
		velX:   speed,
		velY:   -speed,
		radius: radius,
	}
}

// Name implements scene.Scene.
func (s *Scene) Name() string { return "dvd" }

// Position returns the ball centre.
func (s *Scene) Position() (int, int) { return s.x, s.y }

// Bounces returns the number of edge hits so far.
func (s *Scene) Bounces() int { return s.bounces }

// Update implements scene.Scene.
func (s *Scene) Update(in input.Snapshot, _ time.Duration) scene.Transition {
	if in.JustPressed(input.B) {
		return scene.PopScene()
	}

	s.x += s.velX
	if s.x <= s.radius || s.x >= s.width-s.radius {
		s.velX = -s.velX
		s.bounces++
	}
	s.y += s.velY
	if s.y <= s.radius || s.y >= s.height-s.radius {
		s.velY = -s.velY
		s.bounces++
	}
	return scene.Stay()
}

var palette = [...]core.Color{core.Red, core.Green, core.Blue, core.Magenta, core.Orange, core.Cyan}

// Render implements scene.Scene.
func (s *Scene) Render(dst core.Surface) {
	dst.Clear(core.White)
	dst.FillCircle(s.x, s.y, s.radius, palette[s.bounces%len(palette)])
}

func init() {
	registry.Register("dvd", registry.Info{Title: "DVD Bounce", Kind: registry.KindGame},
		func(env *host.Env) scene.Scene { return New(env.Width, env.Height, env.Config.Dvd) })
}
