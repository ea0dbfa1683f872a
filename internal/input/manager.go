package input

// State is the per-tick state of one button.
type State struct {
	Down         bool // Held at the end of the event batch
	JustPressed  bool // Went down during this tick
	JustReleased bool // Went up during this tick
}

// Snapshot is the input of exactly one tick. It is a value; holding on to it
// after the tick is harmless but it will not reflect later events.
type Snapshot struct {
	buttons [NumButtons]State
}

// State returns the full state of b. Invalid buttons report the zero State.
func (s Snapshot) State(b Button) State {
	if !b.Valid() {
		return State{}
	}
	return s.buttons[b]
}

// IsDown returns true while b is held.
func (s Snapshot) IsDown(b Button) bool {
	return s.State(b).Down
}

// JustPressed returns true only on the tick b went down.
func (s Snapshot) JustPressed(b Button) bool {
	return s.State(b).JustPressed
}

// JustReleased returns true only on the tick b went up.
func (s Snapshot) JustReleased(b Button) bool {
	return s.State(b).JustReleased
}

// Any returns true if any button is held or changed this tick.
func (s Snapshot) Any() bool {
	for _, st := range s.buttons {
		if st.Down || st.JustPressed || st.JustReleased {
			return true
		}
	}
	return false
}

// Manager accumulates raw events into button states.
// Per tick: BeginTick, then ApplyEvent for each raw event, then Snapshot.
type Manager struct {
	current Snapshot
}

// NewManager creates a manager with every button released.
func NewManager() *Manager {
	return &Manager{}
}

// BeginTick clears the edge flags of every button. Held state is kept.
func (m *Manager) BeginTick() {
	for i := range m.current.buttons {
		m.current.buttons[i].JustPressed = false
		m.current.buttons[i].JustReleased = false
	}
}

// ApplyEvent folds one raw event into the current tick.
// A press on a held button or a release on a released one is ignored, which
// absorbs duplicated and bouncing hardware signals. Events for unknown buttons
// are dropped.
func (m *Manager) ApplyEvent(ev Event) {
	if !ev.Button.Valid() {
		return
	}
	st := &m.current.buttons[ev.Button]
	switch ev.Polarity {
	case Press:
		if !st.Down {
			st.Down = true
			st.JustPressed = true
		}
	case Release:
		if st.Down {
			st.Down = false
			st.JustReleased = true
		}
	}
}

// ApplyEvents applies events in order.
func (m *Manager) ApplyEvents(events []Event) {
	for _, ev := range events {
		m.ApplyEvent(ev)
	}
}

// Snapshot returns this tick's input. It has no side effects.
func (m *Manager) Snapshot() Snapshot {
	return m.current
}

// Reset releases every button and clears all flags.
func (m *Manager) Reset() {
	m.current = Snapshot{}
}

// SnapshotOf builds a snapshot as if events were applied to a fresh manager
// within a single tick. Handy for tests and scripted input.
func SnapshotOf(events ...Event) Snapshot {
	m := NewManager()
	m.ApplyEvents(events)
	return m.Snapshot()
}
