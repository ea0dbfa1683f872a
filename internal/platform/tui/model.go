package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/screenshot"
	"github.com/vovakirdan/tama/internal/sim"
)

// Options configures a Model.
type Options struct {
	Keymap            *keys.Keymap       // keys.DefaultKeymap() when nil
	ReleaseAfterTicks int                // Synthesized key release, see keys.HoldTracker
	Downscale         int                // Pixel downscale, 0 fits the terminal
	ShowPanel         bool               // Side panel with stack, input and logs
	ScreenshotDir     string             // Where ctrl+s writes PNGs
	Title             string             // Panel title
	Width, Height     int                // Initial terminal size, if known
	Renderer          *lipgloss.Renderer // Per-session renderer for SSH
	Tones             *LogBuzzer         // Shown in the panel when set
	Clock             func() time.Time
}

// Model is the Bubble Tea model running one simulator session.
type Model struct {
	session  *sim.Session
	keys     *keys.HoldTracker
	bindings keyMap
	frames   *FrameRenderer
	lg       *lipgloss.Renderer
	help     help.Model
	stack    table.Model
	tones    *LogBuzzer
	now      func() time.Time

	title         string
	showPanel     bool
	fixedScale    int
	downscale     int
	width, height int
	shotDir       string
	status        string
	err           error
	quitting      bool
}

// NewModel creates a model driving s.
func NewModel(s *sim.Session, opts Options) Model {
	km := opts.Keymap
	if km == nil {
		km = keys.DefaultKeymap()
	}
	lg := opts.Renderer
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Title == "" {
		opts.Title = "tama"
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "."
	}

	h := help.New()
	h.ShowAll = false
	h.Width = panelWidth

	m := Model{
		session:    s,
		keys:       keys.NewHoldTracker(km, opts.ReleaseAfterTicks),
		bindings:   newKeyMap(km),
		frames:     NewFrameRenderer(lg),
		lg:         lg,
		help:       h,
		stack:      newStackTable(lg),
		tones:      opts.Tones,
		now:        opts.Clock,
		title:      opts.Title,
		showPanel:  opts.ShowPanel,
		fixedScale: opts.Downscale,
		width:      opts.Width,
		height:     opts.Height,
		shotDir:    opts.ScreenshotDir,
	}
	m.downscale = m.fit()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.session.Env.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.downscale = m.fit()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keys.Keymap().IsQuit(msg.String()):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.bindings.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.bindings.Panel):
		m.showPanel = !m.showPanel
		m.downscale = m.fit()
		return m, nil
	}

	m.keys.Press(msg.String())
	return m, nil
}

// handleTick advances the engine by one step with the keys pressed since
// the previous tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	if err := m.session.Engine.Tick(m.keys.Tick()); err != nil {
		m.err = err
		m.session.Env.Log().Error("engine halted", "err", err)
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.session.Env.TickRate)
}

// fit picks the downscale for the current terminal size.
func (m Model) fit() int {
	if m.fixedScale > 0 {
		return m.fixedScale
	}
	fb := m.session.Framebuffer
	if m.width <= 0 || m.height <= 0 {
		return 2
	}
	cols := m.width
	if m.showPanel {
		cols -= panelWidth + 5 // Border, padding and gap
	}
	return FitDownscale(fb.Width(), fb.Height(), cols, m.height-1)
}

// saveScreenshot writes the current frame as a PNG.
func (m *Model) saveScreenshot() {
	eng := m.session.Engine
	path := screenshot.Filename(m.shotDir, eng.TopName(), eng.TickCount(), m.now())
	err := screenshot.Save(path, m.session.Frame(), screenshot.Options{
		Scale:   2,
		Caption: fmt.Sprintf("%s  tick %d", eng.TopName(), eng.TickCount()),
	})
	if err != nil {
		m.status = "screenshot failed"
		m.session.Env.Log().Error("screenshot failed", "err", err)
		return
	}
	m.status = "saved " + path
	m.session.Env.Log().Info("screenshot saved", "path", path)
}

// View renders the current frame and the side panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.frames.Render(m.session.Frame(), m.downscale)
	if !m.showPanel {
		return frame
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, frame, " ", m.panelView())
}

// Err returns the fatal engine error that ended the program, if any.
func (m Model) Err() error { return m.err }

// Downscale returns the current pixel downscale.
func (m Model) Downscale() int { return m.downscale }

// Session returns the simulator session.
func (m Model) Session() *sim.Session { return m.session }

// Run starts the Bubble Tea program with the given model and returns the
// engine error that stopped it, if any.
func Run(m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
