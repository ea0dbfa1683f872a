// Package flappy implements a Flappy Bird-style side scroller.
// The player keeps a bird in the air and steers it through gaps in pipes.
package flappy

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/scene"
	"github.com/vovakirdan/tama/internal/scenes/pause"
)

// Buzzer cues.
const (
	scoreToneHz    = 880
	scoreToneMs    = 30
	gameOverToneHz = 196
	gameOverToneMs = 250
)

// Scene implements the game.
// Controls: Up or A flaps, B pauses. After game over A restarts and B goes
// back to the menu.
type Scene struct {
	env        *host.Env
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	pipes      *PipeManager

	playerY   float64 // Centre of the bird
	playerVel float64 // Positive is down
	score     int
	best      int
	gameOver  bool
	tickCount int
	quit      bool // Quit chosen in the pause overlay
}

// New creates a game for env.
func New(env *host.Env) *Scene {
	cfg := env.Config.Flappy
	diff := config.NewDifficultyManager(cfg.Difficulty)
	s := &Scene{
		env:        env,
		cfg:        cfg,
		difficulty: diff,
		pipes:      NewPipeManager(env.Rand("flappy"), env.Width, env.Height, cfg, diff),
	}
	s.Reset()
	return s
}

// Name implements scene.Scene.
func (s *Scene) Name() string { return "flappy" }

// Reset starts a new round. The best score is kept.
func (s *Scene) Reset() {
	s.playerY = float64(s.env.Height) / 2
	s.playerVel = 0
	s.score = 0
	s.gameOver = false
	s.tickCount = 0
	s.pipes.Reset()
}

// Update implements scene.Scene.
func (s *Scene) Update(in input.Snapshot, _ time.Duration) scene.Transition {
	if s.quit {
		return scene.PopScene()
	}

	if s.gameOver {
		switch {
		case in.JustPressed(input.A):
			s.Reset()
		case in.JustPressed(input.B):
			return scene.PopScene()
		}
		return scene.Stay()
	}

	if in.JustPressed(input.B) {
		return scene.PushScene(pause.New())
	}

	s.tickCount++

	// Pipes
	passed := s.pipes.Update(s.cfg.Player.X-s.cfg.Player.Radius, s.score, s.tickCount)
	if passed > 0 {
		s.score += passed
		s.env.Output.PlayTone(scoreToneHz, scoreToneMs)
	}

	// Player
	if in.JustPressed(input.Up) || in.JustPressed(input.A) {
		s.playerVel = -s.cfg.Physics.JumpVelocity
	}
	s.playerY += s.playerVel
	s.playerVel += s.cfg.Physics.Gravity
	if mf := s.cfg.Physics.MaxFallSpeed; mf > 0 && s.playerVel > mf {
		s.playerVel = mf
	}

	if s.collided() {
		s.gameOver = true
		s.best = max(s.best, s.score)
		s.env.Output.PlayTone(gameOverToneHz, gameOverToneMs)
		s.env.Log().Info("flappy over", "score", s.score, "best", s.best, "ticks", s.tickCount)
	}
	return scene.Stay()
}

// Resume implements scene.Resumer.
func (s *Scene) Resume(from scene.Scene) {
	if p, ok := from.(*pause.Scene); ok && p.QuitRequested() {
		s.quit = true
	}
}

func (s *Scene) collided() bool {
	r := s.cfg.Player.Radius
	y := int(s.playerY)
	if y-r < 0 || y+r > s.env.Height {
		return true
	}
	return s.pipes.CheckCollision(s.playerRect())
}

// playerRect returns the bird's collision rectangle.
func (s *Scene) playerRect() core.Rect {
	r := s.cfg.Player.Radius
	return core.NewRect(s.cfg.Player.X-r, int(s.playerY)-r, 2*r, 2*r)
}

// Score returns the number of pipes passed this round.
func (s *Scene) Score() int { return s.score }

// Best returns the best score since the scene was created.
func (s *Scene) Best() int { return s.best }

// GameOver reports whether the round has ended.
func (s *Scene) GameOver() bool { return s.gameOver }

// PlayerY returns the bird's vertical centre.
func (s *Scene) PlayerY() float64 { return s.playerY }

// Pipes returns the pipes on screen.
func (s *Scene) Pipes() []Pipe { return s.pipes.Pipes() }

// Render implements scene.Scene.
func (s *Scene) Render(dst core.Surface) {
	dst.Clear(core.White)

	w := s.cfg.Obstacles.PipeWidth
	for _, p := range s.pipes.Pipes() {
		dst.FillRect(p.TopRect(w), core.Black)
		dst.FillRect(p.BottomRect(w, dst.Height()), core.Black)
	}

	dst.FillCircle(s.cfg.Player.X, int(s.playerY), s.cfg.Player.Radius, core.Green)

	dst.DrawText(4, 2, fmt.Sprintf("Score: %d", s.score), core.Blue)

	if s.gameOver {
		s.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score %d  Best %d", s.score, s.best),
			"A retry  B menu")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Scene) drawCenteredMessage(dst core.Surface, lines ...string) {
	lh := dst.LineHeight()
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, dst.TextWidth(l))
	}
	boxW += 16
	boxH := lh*len(lines) + 12
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, core.Black)
	dst.DrawRect(box, core.Red)
	for i, l := range lines {
		core.DrawTextCentered(dst, box.Y+6+i*lh, l, core.White)
	}
}

// Register the game with the registry
func init() {
	registry.Register("flappy", registry.Info{Title: "Flappy", Kind: registry.KindGame},
		func(env *host.Env) scene.Scene { return New(env) })
}
