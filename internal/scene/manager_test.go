package scene

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/input"
)

const dt = time.Second / 30

// stubScene returns scripted transitions and records its hooks.
type stubScene struct {
	name    string
	color   core.Color
	script  []Transition
	decide  func(in input.Snapshot) Transition
	updates int
	events  *[]string

	resumedFrom Scene
}

func newStub(name string, events *[]string, script ...Transition) *stubScene {
	return &stubScene{name: name, events: events, script: script}
}

func (s *stubScene) Name() string { return s.name }

func (s *stubScene) Update(in input.Snapshot, _ time.Duration) Transition {
	s.updates++
	if s.decide != nil {
		return s.decide(in)
	}
	if len(s.script) == 0 {
		return Stay()
	}
	tr := s.script[0]
	s.script = s.script[1:]
	return tr
}

func (s *stubScene) Render(dst core.Surface) { dst.Clear(s.color) }

func (s *stubScene) record(ev string) {
	if s.events != nil {
		*s.events = append(*s.events, ev+":"+s.name)
	}
}

func (s *stubScene) Enter()   { s.record("enter") }
func (s *stubScene) Exit()    { s.record("exit") }
func (s *stubScene) Suspend() { s.record("suspend") }
func (s *stubScene) Resume(from Scene) {
	s.resumedFrom = from
	s.record("resume")
}

func step(t *testing.T, m *Manager) {
	t.Helper()
	require.NoError(t, m.Step(input.Snapshot{}, dt))
}

func TestNewManagerRejectsNilRoot(t *testing.T) {
	m, err := NewManager(nil)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNilScene)
}

func TestDepthArithmetic(t *testing.T) {
	c := newStub("c", nil, PopScene())
	b := newStub("b", nil, PushScene(c), ReplaceWith(newStub("b2", nil, PopScene())))
	root := newStub("root", nil, PushScene(b))

	m, err := NewManager(root)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Depth())

	step(t, m) // root pushes b
	assert.Equal(t, 2, m.Depth())
	step(t, m) // b pushes c
	assert.Equal(t, 3, m.Depth())
	step(t, m) // c pops
	assert.Equal(t, 2, m.Depth())
	assert.Same(t, b, m.Top())
	step(t, m) // b replaced by b2
	assert.Equal(t, 2, m.Depth())
	assert.Equal(t, []string{"root", "b2"}, m.Names())
	step(t, m) // b2 pops
	assert.Equal(t, 1, m.Depth())
	assert.Same(t, root, m.Top())
}

func TestPopAtRootIsFatal(t *testing.T) {
	root := newStub("root", nil, PopScene())
	m, err := NewManager(root)
	require.NoError(t, err)

	err = m.Step(input.Snapshot{}, dt)
	require.ErrorIs(t, err, ErrPopRoot)

	var fe *FatalError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "pop", fe.Op)
	assert.Equal(t, "root", fe.Scene)
	assert.Equal(t, 1, fe.Depth)

	assert.Equal(t, 1, m.Depth(), "stack is left unchanged")
	assert.Same(t, root, m.Top())
	assert.Equal(t, err, m.Halted())

	err = m.Step(input.Snapshot{}, dt)
	assert.ErrorIs(t, err, ErrHalted)
	assert.ErrorIs(t, err, ErrPopRoot)
	assert.Equal(t, 1, root.updates, "a halted manager does not update scenes")
}

func TestReplaceThenPopIsFatal(t *testing.T) {
	replacement := newStub("replacement", nil, PopScene())
	root := newStub("root", nil, ReplaceWith(replacement))

	m, err := NewManager(root)
	require.NoError(t, err)

	step(t, m)
	assert.Equal(t, 1, m.Depth())
	assert.Same(t, replacement, m.Top())

	err = m.Step(input.Snapshot{}, dt)
	assert.ErrorIs(t, err, ErrPopRoot)
	assert.Same(t, replacement, m.Top())
}

func TestNilAndUnknownTransitionsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		tr   Transition
		want error
	}{
		{"push nil", PushScene(nil), ErrNilScene},
		{"replace nil", ReplaceWith(nil), ErrNilScene},
		{"unknown kind", Transition{Kind: Kind(42)}, ErrUnknownTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager(newStub("root", nil, tt.tr))
			require.NoError(t, err)

			err = m.Step(input.Snapshot{}, dt)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, m.Depth())
		})
	}
}

func TestLifecycleHookOrder(t *testing.T) {
	var events []string
	child := newStub("child", &events, PopScene())
	next := newStub("next", &events)
	root := newStub("root", &events, PushScene(child), ReplaceWith(next))

	m, err := NewManager(root)
	require.NoError(t, err)
	step(t, m)
	step(t, m)
	step(t, m)
	m.Close()
	m.Close()

	assert.Equal(t, []string{
		"enter:root",
		"suspend:root", "enter:child",
		"exit:child", "resume:root",
		"exit:root", "enter:next",
		"exit:next",
	}, events)
	assert.Same(t, child, root.resumedFrom)
	assert.Zero(t, m.Depth())
	assert.Nil(t, m.Top())
	assert.ErrorIs(t, m.Step(input.Snapshot{}, dt), ErrClosed)
}

func TestCloseExitsTopToBottom(t *testing.T) {
	var events []string
	b := newStub("b", &events)
	a := newStub("a", &events, PushScene(b))
	m, err := NewManager(a)
	require.NoError(t, err)
	step(t, m)

	events = events[:0]
	m.Close()
	assert.Equal(t, []string{"exit:b", "exit:a"}, events)
}

// counterScene is a tiny stateful scene: A presses count, the counter
// decides when to push the child.
type counterScene struct {
	name    string
	color   core.Color
	presses int
	child   Scene
}

func (s *counterScene) Name() string { return s.name }

func (s *counterScene) Update(in input.Snapshot, _ time.Duration) Transition {
	if in.JustPressed(input.A) {
		s.presses++
		if s.child != nil {
			return PushScene(s.child)
		}
	}
	if in.JustPressed(input.B) && s.child == nil {
		return PopScene()
	}
	return Stay()
}

func (s *counterScene) Render(dst core.Surface) { dst.Clear(s.color) }

func TestEndToEndPushPopPreservesSuspendedState(t *testing.T) {
	fb := core.NewFramebuffer(8, 8)
	canvas := core.NewCanvas(fb)

	s1 := &counterScene{name: "S1", color: core.Blue}
	s0 := &counterScene{name: "S0", color: core.Red, child: s1}

	in := input.NewManager()
	m, err := NewManager(s0)
	require.NoError(t, err)

	tick := func(events ...input.Event) {
		t.Helper()
		in.BeginTick()
		in.ApplyEvents(events)
		require.NoError(t, m.Step(in.Snapshot(), dt))
		m.Render(canvas)
	}

	// No input: nothing changes, S0 is drawn.
	tick()
	assert.Equal(t, []string{"S0"}, m.Names())
	assert.Equal(t, core.Red, fb.Pixel(0, 0))

	// A pressed: S0 pushes S1, and this tick's render shows only S1.
	tick(input.Pressed(input.A))
	assert.Equal(t, []string{"S0", "S1"}, m.Names())
	assert.Equal(t, core.Blue, fb.Pixel(0, 0))
	assert.Equal(t, 0, s1.presses, "a pushed scene is not updated on the tick it was pushed")

	// Release A, then S1 pops on B.
	tick(input.Released(input.A))
	assert.Equal(t, 2, m.Depth())
	tick(input.Pressed(input.B))
	assert.Equal(t, []string{"S0"}, m.Names())
	assert.Equal(t, core.Red, fb.Pixel(0, 0))
	assert.Equal(t, 1, s0.presses, "suspended state survives the push/pop round trip")
}

// walkScene uses seeded randomness, so its trajectory is reproducible.
type walkScene struct {
	x, y  int
	steps int
	rng   interface{ IntN(int) int }
}

func (s *walkScene) Name() string { return "walk" }

func (s *walkScene) Update(in input.Snapshot, _ time.Duration) Transition {
	s.steps++
	s.x += s.rng.IntN(3) - 1
	if in.IsDown(input.Up) {
		s.y--
	}
	if s.steps%7 == 0 {
		return PushScene(&walkScene{rng: s.rng})
	}
	return Stay()
}

func (s *walkScene) Render(core.Surface) {}

func TestUpdateIsDeterministic(t *testing.T) {
	run := func() (*walkScene, []Transition) {
		s := &walkScene{rng: rand.New(rand.NewPCG(1234, 1))}
		var out []Transition
		for i := 0; i < 50; i++ {
			snap := input.SnapshotOf()
			if i%3 == 0 {
				snap = input.SnapshotOf(input.Pressed(input.Up))
			}
			tr := s.Update(snap, dt)
			tr.Next = nil
			out = append(out, tr)
		}
		return s, out
	}

	a, trA := run()
	b, trB := run()
	assert.Equal(t, a.x, b.x)
	assert.Equal(t, a.y, b.y)
	assert.Equal(t, trA, trB)
}

func TestTransitionString(t *testing.T) {
	assert.Equal(t, "none", Stay().String())
	assert.Equal(t, "push(x)", PushScene(newStub("x", nil)).String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
