package input

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressSetsEdgeThenDecays(t *testing.T) {
	m := NewManager()

	m.BeginTick()
	m.ApplyEvent(Pressed(A))
	s := m.Snapshot()
	assert.True(t, s.IsDown(A))
	assert.True(t, s.JustPressed(A))
	assert.False(t, s.JustReleased(A))

	m.BeginTick()
	s = m.Snapshot()
	assert.True(t, s.IsDown(A), "held state survives the tick boundary")
	assert.False(t, s.JustPressed(A), "edge flag must decay")
}

func TestReleaseEdge(t *testing.T) {
	m := NewManager()
	m.BeginTick()
	m.ApplyEvent(Pressed(Left))

	m.BeginTick()
	m.ApplyEvent(Released(Left))
	s := m.Snapshot()
	assert.False(t, s.IsDown(Left))
	assert.True(t, s.JustReleased(Left))
	assert.False(t, s.JustPressed(Left))

	m.BeginTick()
	assert.Equal(t, State{}, m.Snapshot().State(Left))
}

func TestDuplicateEventsAreIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   State
	}{
		{"double press", []Event{Pressed(B), Pressed(B)}, State{Down: true, JustPressed: true}},
		{"release while up", []Event{Released(B)}, State{}},
		{"double release", []Event{Pressed(B), Released(B), Released(B)}, State{JustPressed: true, JustReleased: true}},
		{"tap in one tick", []Event{Pressed(B), Released(B)}, State{JustPressed: true, JustReleased: true}},
		{"tap and hold", []Event{Pressed(B), Released(B), Pressed(B)}, State{Down: true, JustPressed: true, JustReleased: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			m.BeginTick()
			m.ApplyEvents(tt.events)
			assert.Equal(t, tt.want, m.Snapshot().State(B))
		})
	}
}

func TestPressWhileHeldAcrossTicks(t *testing.T) {
	m := NewManager()
	m.BeginTick()
	m.ApplyEvent(Pressed(Up))
	m.BeginTick()
	m.ApplyEvent(Pressed(Up))

	s := m.Snapshot()
	assert.True(t, s.IsDown(Up))
	assert.False(t, s.JustPressed(Up), "a repeated press is not a new edge")
}

func TestInvalidButtonDropped(t *testing.T) {
	m := NewManager()
	m.BeginTick()
	m.ApplyEvent(Event{Button: Button(42), Polarity: Press})

	s := m.Snapshot()
	assert.False(t, s.Any())
	assert.Equal(t, State{}, s.State(Button(42)))
}

func TestButtonsAreIndependent(t *testing.T) {
	m := NewManager()
	m.BeginTick()
	m.ApplyEvents([]Event{Pressed(A), Pressed(Down)})
	m.BeginTick()
	m.ApplyEvent(Released(A))

	s := m.Snapshot()
	assert.True(t, s.JustReleased(A))
	assert.True(t, s.IsDown(Down))
	assert.False(t, s.JustPressed(Down))
	for _, b := range []Button{Up, Left, Right, B} {
		assert.Equal(t, State{}, s.State(b), b.String())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewManager()
	m.BeginTick()
	m.ApplyEvent(Pressed(Right))
	before := m.Snapshot()

	m.BeginTick()
	m.ApplyEvent(Released(Right))

	assert.True(t, before.IsDown(Right))
	assert.True(t, before.JustPressed(Right))
	assert.False(t, m.Snapshot().IsDown(Right))
}

func TestReset(t *testing.T) {
	m := NewManager()
	m.ApplyEvents([]Event{Pressed(A), Pressed(Up)})
	m.Reset()
	assert.False(t, m.Snapshot().Any())
}

func TestParseButton(t *testing.T) {
	for _, b := range Buttons {
		got, err := ParseButton(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	got, err := ParseButton("down")
	require.NoError(t, err)
	assert.Equal(t, Down, got)

	_, err = ParseButton("pwr")
	assert.Error(t, err)
}

func TestSnapshotOf(t *testing.T) {
	s := SnapshotOf(Pressed(A))
	assert.True(t, s.JustPressed(A))
	assert.Equal(t, "A press", Pressed(A).String())
	assert.Equal(t, "Button(9)", Button(9).String())
}

func TestRandomEventStreams(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 6))
	m := NewManager()
	var prev Snapshot

	for tick := 0; tick < 5000; tick++ {
		events := make([]Event, rng.IntN(6))
		for i := range events {
			events[i] = Event{
				Button:   Button(rng.IntN(NumButtons + 2)), // Includes invalid ids
				Polarity: Polarity(rng.IntN(2)),
			}
		}

		m.BeginTick()
		m.ApplyEvents(events)
		cur := m.Snapshot()

		for _, b := range Buttons {
			var (
				seen     bool
				last     Polarity
				presses  bool
				releases bool
			)
			for _, ev := range events {
				if ev.Button != b {
					continue
				}
				seen, last = true, ev.Polarity
				presses = presses || ev.Polarity == Press
				releases = releases || ev.Polarity == Release
			}

			was, st := prev.State(b), cur.State(b)
			if !seen {
				require.Equal(t, State{Down: was.Down}, st, "tick %d %v: no events means no edges", tick, b)
				continue
			}
			require.Equal(t, last == Press, st.Down, "tick %d %v: down follows the last event", tick, b)
			if st.JustPressed {
				require.True(t, presses, "tick %d %v: press edge without a press", tick, b)
			}
			if st.JustReleased {
				require.True(t, releases, "tick %d %v: release edge without a release", tick, b)
			}
			if !was.Down && st.Down {
				require.True(t, st.JustPressed, "tick %d %v: went down without a press edge", tick, b)
			}
			if was.Down && !st.Down {
				require.True(t, st.JustReleased, "tick %d %v: went up without a release edge", tick, b)
			}
		}
		prev = cur
	}
}
