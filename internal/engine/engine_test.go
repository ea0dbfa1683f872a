package engine

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/scene"
)

type memRecorder struct {
	ticks   []uint64
	events  [][]input.Event
	fail    error
	flushed bool
}

func (r *memRecorder) RecordTick(tick uint64, events []input.Event) error {
	if r.fail != nil {
		return r.fail
	}
	r.ticks = append(r.ticks, tick)
	r.events = append(r.events, append([]input.Event(nil), events...))
	return nil
}

func (r *memRecorder) Flush() error {
	r.flushed = true
	return nil
}

// dotScene moves a dot with seeded jitter; A pushes a child that B pops.
type dotScene struct {
	x, y int
	rng  interface{ IntN(int) int }
}

func (s *dotScene) Name() string { return "dot" }

func (s *dotScene) Update(in input.Snapshot, _ time.Duration) scene.Transition {
	if in.IsDown(input.Right) {
		s.x++
	}
	if in.IsDown(input.Down) {
		s.y++
	}
	s.x += s.rng.IntN(3) - 1
	if in.JustPressed(input.A) {
		return scene.PushScene(&popScene{})
	}
	return scene.Stay()
}

func (s *dotScene) Render(dst core.Surface) {
	dst.Clear(core.Black)
	dst.SetPixel(core.Clamp(s.x, 0, dst.Width()-1), core.Clamp(s.y, 0, dst.Height()-1), core.White)
}

type popScene struct{}

func (popScene) Name() string { return "child" }

func (popScene) Update(in input.Snapshot, _ time.Duration) scene.Transition {
	if in.JustPressed(input.B) {
		return scene.PopScene()
	}
	return scene.Stay()
}

func (popScene) Render(dst core.Surface) { dst.Clear(core.Blue) }

func script() [][]input.Event {
	ticks := make([][]input.Event, 120)
	for i := range ticks {
		switch i % 20 {
		case 0:
			ticks[i] = []input.Event{input.Pressed(input.Right)}
		case 5:
			ticks[i] = []input.Event{input.Released(input.Right), input.Pressed(input.Down)}
		case 9:
			ticks[i] = []input.Event{input.Released(input.Down), input.Pressed(input.A)}
		case 10:
			ticks[i] = []input.Event{input.Released(input.A), input.Pressed(input.B)}
		case 11:
			ticks[i] = []input.Event{input.Released(input.B)}
		}
	}
	return ticks
}

func newDotEngine(t *testing.T, seed int64, rec Recorder) (*Engine, *dotScene) {
	t.Helper()
	env := host.NewEnv(config.Default(), seed)
	root := &dotScene{x: 50, y: 50, rng: env.Rand("dot")}
	e, err := New(root, Options{TickRate: 30, Recorder: rec})
	require.NoError(t, err)
	return e, root
}

func TestTickRecordsEveryTick(t *testing.T) {
	rec := &memRecorder{}
	e, _ := newDotEngine(t, 7, rec)

	require.NoError(t, e.Run(script()))
	require.NoError(t, e.Close())

	assert.Equal(t, uint64(120), e.TickCount())
	assert.Len(t, rec.ticks, 120)
	assert.Equal(t, uint64(0), rec.ticks[0])
	assert.Equal(t, uint64(119), rec.ticks[119])
	assert.Equal(t, []input.Event{input.Pressed(input.Right)}, rec.events[0])
	assert.True(t, rec.flushed)
}

func TestReplayIsDeterministic(t *testing.T) {
	rec := &memRecorder{}
	live, liveRoot := newDotEngine(t, 42, rec)
	require.NoError(t, live.Run(script()))

	replay, replayRoot := newDotEngine(t, 42, nil)
	require.NoError(t, replay.Run(rec.events))

	assert.Equal(t, liveRoot.x, replayRoot.x)
	assert.Equal(t, liveRoot.y, replayRoot.y)
	assert.Equal(t, live.SceneNames(), replay.SceneNames())

	a, b := core.NewFramebuffer(120, 120), core.NewFramebuffer(120, 120)
	live.Render(core.NewCanvas(a))
	replay.Render(core.NewCanvas(b))
	assert.True(t, a.Equal(b), "replayed frame must match the live frame")
}

func TestPushedSceneRendersOnSameTick(t *testing.T) {
	e, _ := newDotEngine(t, 1, nil)
	fb := core.NewFramebuffer(4, 4)
	canvas := core.NewCanvas(fb)

	require.NoError(t, e.Tick([]input.Event{input.Pressed(input.A)}))
	e.Render(canvas)
	assert.Equal(t, []string{"dot", "child"}, e.SceneNames())
	assert.Equal(t, core.Blue, fb.Pixel(0, 0))
	assert.True(t, e.Snapshot().JustPressed(input.A))

	require.NoError(t, e.Tick([]input.Event{input.Released(input.A), input.Pressed(input.B)}))
	e.Render(canvas)
	assert.Equal(t, 1, e.Depth())
	assert.Equal(t, core.Black, fb.Pixel(0, 0))
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	var out bytes.Buffer
	rec := &memRecorder{fail: errors.New("disk full")}
	env := host.NewEnv(config.Default(), 1)
	e, err := New(&dotScene{rng: env.Rand("dot")}, Options{
		Recorder: rec,
		Logger:   log.New(&out),
	})
	require.NoError(t, err)

	require.NoError(t, e.Tick(nil))
	require.NoError(t, e.Tick(nil))
	assert.Equal(t, uint64(2), e.TickCount())
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("input journal disabled")))
}

type rootPopper struct{}

func (rootPopper) Name() string                                         { return "popper" }
func (rootPopper) Update(input.Snapshot, time.Duration) scene.Transition { return scene.PopScene() }
func (rootPopper) Render(core.Surface)                                  {}

func TestFatalErrorHaltsEngine(t *testing.T) {
	rec := &memRecorder{}
	e, err := New(rootPopper{}, Options{Recorder: rec})
	require.NoError(t, err)

	err = e.Tick(nil)
	require.ErrorIs(t, err, scene.ErrPopRoot)
	assert.ErrorIs(t, e.Halted(), scene.ErrPopRoot)

	err = e.Tick(nil)
	assert.ErrorIs(t, err, scene.ErrHalted)
	assert.Equal(t, uint64(1), e.TickCount(), "a halted engine does not advance")
	assert.Len(t, rec.ticks, 1)
}

func TestTimingIsLoggedPeriodically(t *testing.T) {
	var out bytes.Buffer
	logger := log.NewWithOptions(&out, log.Options{Level: log.DebugLevel})

	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}

	env := host.NewEnv(config.Default(), 1)
	e, err := New(&dotScene{rng: env.Rand("dot")}, Options{
		TickRate:    10,
		TimingEvery: 5,
		Logger:      logger,
		Clock:       clock,
	})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, e.DT())

	for i := 0; i < 10; i++ {
		require.NoError(t, e.Tick(nil))
	}
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("frame timing")))
	assert.Contains(t, out.String(), "update_us=1000")
}

func TestCloseWithoutRecorder(t *testing.T) {
	e, _ := newDotEngine(t, 3, nil)
	assert.NoError(t, e.Close())
	assert.Equal(t, "", e.TopName())
	assert.ErrorIs(t, e.Tick(nil), scene.ErrClosed)
}
