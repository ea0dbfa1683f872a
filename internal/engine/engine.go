// Package engine runs the fixed-step loop body shared by every platform:
// collect the tick's raw events, build the input snapshot, step the scene
// stack, and render on demand. Platforms own the cadence.
package engine

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/logging"
	"github.com/vovakirdan/tama/internal/scene"
)

// DefaultTickRate matches the device loop.
const DefaultTickRate = 30

// Recorder receives the raw events of every tick before the scenes see them.
type Recorder interface {
	RecordTick(tick uint64, events []input.Event) error
}

// Flusher is implemented by recorders that buffer writes.
type Flusher interface {
	Flush() error
}

// Options configures an Engine.
type Options struct {
	TickRate    int         // Ticks per second, DefaultTickRate when zero
	Logger      *log.Logger // Discarded when nil
	Recorder    Recorder    // Optional input journal
	TimingEvery int         // Log frame timing every N ticks, TickRate when zero
	Clock       func() time.Time
}

// Engine owns one input manager and one scene stack.
type Engine struct {
	input    *input.Manager
	scenes   *scene.Manager
	logger   *log.Logger
	recorder Recorder
	now      func() time.Time

	dt          time.Duration
	ticks       uint64
	timingEvery uint64

	updateTotal time.Duration
	renderTotal time.Duration
	renders     int
}

// New creates an engine with root as the first scene.
func New(root scene.Scene, opts Options) (*Engine, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.TimingEvery <= 0 {
		opts.TimingEvery = opts.TickRate
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	scenes, err := scene.NewManager(root, scene.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	return &Engine{
		input:       input.NewManager(),
		scenes:      scenes,
		logger:      opts.Logger,
		recorder:    opts.Recorder,
		now:         opts.Clock,
		dt:          time.Second / time.Duration(opts.TickRate),
		timingEvery: uint64(opts.TimingEvery),
	}, nil
}

// Tick advances the simulation by one fixed step with the given raw events,
// applied in order. A fatal scene error is returned and the engine stays
// halted.
func (e *Engine) Tick(events []input.Event) error {
	if e.scenes.Halted() != nil || e.scenes.Depth() == 0 {
		return e.scenes.Step(input.Snapshot{}, e.dt)
	}

	start := e.now()
	e.input.BeginTick()
	e.input.ApplyEvents(events)

	if e.recorder != nil {
		if err := e.recorder.RecordTick(e.ticks, events); err != nil {
			e.logger.Error("input journal disabled", "tick", e.ticks, "err", err)
			e.recorder = nil
		}
	}

	err := e.scenes.Step(e.input.Snapshot(), e.dt)
	e.ticks++
	e.updateTotal += e.now().Sub(start)

	if e.ticks%e.timingEvery == 0 {
		e.reportTiming()
	}
	return err
}

// Run feeds a recorded sequence of ticks through the engine.
func (e *Engine) Run(ticks [][]input.Event) error {
	for _, events := range ticks {
		if err := e.Tick(events); err != nil {
			return err
		}
	}
	return nil
}

// Render draws the active scene onto dst.
func (e *Engine) Render(dst core.Surface) {
	start := e.now()
	e.scenes.Render(dst)
	e.renderTotal += e.now().Sub(start)
	e.renders++
}

func (e *Engine) reportTiming() {
	n := time.Duration(e.timingEvery)
	update := e.updateTotal / n
	var render time.Duration
	if e.renders > 0 {
		render = e.renderTotal / time.Duration(e.renders)
	}
	e.logger.Debug("frame timing",
		"tick", e.ticks,
		"update_us", update.Microseconds(),
		"render_us", render.Microseconds(),
		"renders", e.renders,
		"scene", e.TopName(),
	)
	e.updateTotal, e.renderTotal, e.renders = 0, 0, 0
}

// Close tears the scene stack down and flushes the recorder.
func (e *Engine) Close() error {
	e.scenes.Close()
	if f, ok := e.recorder.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// TickCount returns the number of completed ticks.
func (e *Engine) TickCount() uint64 { return e.ticks }

// DT returns the fixed tick duration.
func (e *Engine) DT() time.Duration { return e.dt }

// Snapshot returns the input of the last tick.
func (e *Engine) Snapshot() input.Snapshot { return e.input.Snapshot() }

// Depth returns the scene stack depth.
func (e *Engine) Depth() int { return e.scenes.Depth() }

// SceneNames returns scene names from bottom to top.
func (e *Engine) SceneNames() []string { return e.scenes.Names() }

// TopName returns the active scene's name, or "" once closed.
func (e *Engine) TopName() string {
	if top := e.scenes.Top(); top != nil {
		return top.Name()
	}
	return ""
}

// Halted returns the fatal error that stopped the engine, if any.
func (e *Engine) Halted() error { return e.scenes.Halted() }
