// Package window is the desktop simulator built on Ebitengine. Ebitengine
// calls Update at the configured TPS, so each Update is exactly one engine
// tick; Draw may be skipped by the runtime but updates never are.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/screenshot"
	"github.com/vovakirdan/tama/internal/sim"
)

// Options configures the window.
type Options struct {
	Keymap        *keys.Keymap // keys.DefaultKeymap() when nil
	Scale         int          // Window pixels per display pixel
	Title         string
	ScreenshotDir string
	Clock         func() time.Time
}

// Game adapts a simulator session to ebiten.Game.
type Game struct {
	session *sim.Session
	tracker *keys.Tracker
	opts    Options

	img     *ebiten.Image
	pix     []byte
	pressed []ebiten.Key
	err     error
}

// New creates the window game for s.
func New(s *sim.Session, opts Options) *Game {
	if opts.Keymap == nil {
		opts.Keymap = keys.DefaultKeymap()
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Title == "" {
		opts.Title = "tama"
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "."
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	fb := s.Framebuffer
	return &Game{
		session: s,
		tracker: keys.NewTracker(opts.Keymap),
		opts:    opts,
		img:     ebiten.NewImage(fb.Width(), fb.Height()),
	}
}

// keyName maps an Ebitengine key to its keymap name ("w", "up", "space").
func keyName(k ebiten.Key) string {
	return keys.Normalize(k.String())
}

func ctrlHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	for _, k := range g.pressed {
		name := keyName(k)
		if g.opts.Keymap.IsQuit(name) || (ctrlHeld() && g.opts.Keymap.IsQuit("ctrl+"+name)) {
			return ebiten.Termination
		}
		if k == ebiten.KeyF12 {
			g.saveScreenshot()
			continue
		}
		g.tracker.KeyDown(name)
	}

	g.pressed = inpututil.AppendJustReleasedKeys(g.pressed[:0])
	for _, k := range g.pressed {
		g.tracker.KeyUp(keyName(k))
	}

	if err := g.session.Engine.Tick(g.tracker.Drain()); err != nil {
		g.err = err
		g.session.Env.Log().Error("engine halted", "err", err)
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	fb := g.session.Frame()
	g.pix = fb.AppendRGBA(g.pix[:0])
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

// Layout implements ebiten.Game. The logical screen is the display itself;
// Ebitengine scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	fb := g.session.Framebuffer
	return fb.Width(), fb.Height()
}

func (g *Game) saveScreenshot() {
	eng := g.session.Engine
	path := screenshot.Filename(g.opts.ScreenshotDir, eng.TopName(), eng.TickCount(), g.opts.Clock())
	if err := screenshot.Save(path, g.session.Frame(), screenshot.Options{Scale: g.opts.Scale}); err != nil {
		g.session.Env.Log().Error("screenshot failed", "err", err)
		return
	}
	g.session.Env.Log().Info("screenshot saved", "path", path)
}

// Err returns the fatal engine error that closed the window, if any.
func (g *Game) Err() error { return g.err }

// Run opens the window and blocks until it is closed, a quit key is pressed
// or the engine halts.
func Run(g *Game) error {
	fb := g.session.Framebuffer
	ebiten.SetWindowSize(fb.Width()*g.opts.Scale, fb.Height()*g.opts.Scale)
	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetTPS(g.session.Env.TickRate)

	err := ebiten.RunGame(g)
	switch {
	case g.err != nil:
		return g.err
	case err == nil, errors.Is(err, ebiten.Termination):
		return nil
	default:
		return fmt.Errorf("window: %w", err)
	}
}
