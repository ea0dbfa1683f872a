package scene

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/input"
)

// Manager owns the scene stack. The top scene is the only one updated and
// rendered; scenes below keep their state while suspended. The stack is never
// empty while the manager is running.
type Manager struct {
	stack  []Scene
	logger *log.Logger
	halted error
	closed bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for transition debug logs.
func WithLogger(l *log.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager with root as the only scene and runs root's
// Enter hook.
func NewManager(root Scene, opts ...ManagerOption) (*Manager, error) {
	if root == nil {
		return nil, &FatalError{Op: "init", Depth: 0, Err: ErrNilScene}
	}
	m := &Manager{
		stack:  make([]Scene, 0, 4),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.stack = append(m.stack, root)
	enter(root)
	m.logger.Debug("scene root", "scene", root.Name())
	return m, nil
}

// Step updates the top scene once and applies the transition it returns.
// A fatal error halts the manager; later calls return ErrHalted wrapping it.
// A scene pushed here is rendered after its Enter hook and first updated on
// the next Step.
func (m *Manager) Step(in input.Snapshot, dt time.Duration) error {
	if m.closed {
		return ErrClosed
	}
	if m.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, m.halted)
	}

	top := m.Top()
	tr := top.Update(in, dt)
	if err := m.apply(top, tr); err != nil {
		m.halted = err
		m.logger.Error("scene stack halted", "err", err)
		return err
	}
	return nil
}

func (m *Manager) apply(top Scene, tr Transition) error {
	switch tr.Kind {
	case None:
		return nil

	case Replace:
		if tr.Next == nil {
			return m.fail(tr, top, ErrNilScene)
		}
		exit(top)
		m.stack[len(m.stack)-1] = tr.Next
		enter(tr.Next)

	case Push:
		if tr.Next == nil {
			return m.fail(tr, top, ErrNilScene)
		}
		if s, ok := top.(Suspender); ok {
			s.Suspend()
		}
		m.stack = append(m.stack, tr.Next)
		enter(tr.Next)

	case Pop:
		if len(m.stack) == 1 {
			return m.fail(tr, top, ErrPopRoot)
		}
		exit(top)
		m.stack[len(m.stack)-1] = nil
		m.stack = m.stack[:len(m.stack)-1]
		if r, ok := m.Top().(Resumer); ok {
			r.Resume(top)
		}

	default:
		return m.fail(tr, top, ErrUnknownTransition)
	}

	m.logger.Debug("scene transition", "op", tr.Kind, "from", top.Name(), "top", m.Top().Name(), "depth", len(m.stack))
	return nil
}

func (m *Manager) fail(tr Transition, top Scene, err error) error {
	return &FatalError{Op: tr.Kind.String(), Scene: top.Name(), Depth: len(m.stack), Err: err}
}

// Render draws the top scene. Suspended scenes are not drawn.
func (m *Manager) Render(dst core.Surface) {
	if len(m.stack) == 0 {
		return
	}
	m.Top().Render(dst)
}

// Depth returns the number of scenes on the stack.
func (m *Manager) Depth() int {
	return len(m.stack)
}

// Top returns the active scene, or nil after Close.
func (m *Manager) Top() Scene {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Names returns scene names from bottom to top.
func (m *Manager) Names() []string {
	names := make([]string, len(m.stack))
	for i, s := range m.stack {
		names[i] = s.Name()
	}
	return names
}

// Halted returns the fatal error that stopped the manager, if any.
func (m *Manager) Halted() error {
	return m.halted
}

// Close exits every scene from top to bottom. It is safe to call twice.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for i := len(m.stack) - 1; i >= 0; i-- {
		exit(m.stack[i])
		m.stack[i] = nil
	}
	m.stack = m.stack[:0]
}

func enter(s Scene) {
	if e, ok := s.(Enterer); ok {
		e.Enter()
	}
}

func exit(s Scene) {
	if e, ok := s.(Exiter); ok {
		e.Exit()
	}
}
