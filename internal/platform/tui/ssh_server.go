package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/logging"
	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/sim"
	"github.com/vovakirdan/tama/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tama/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config is used for every session.
	Config config.Config

	// Store journals every session when set. The caller owns it.
	Store *storage.Store

	// LogOutput receives the server and session logs; stderr when nil.
	LogOutput io.Writer

	// LogLevel applies to the server and session loggers.
	LogLevel log.Level
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Config:      config.Default(),
		LogLevel:    log.InfoLevel,
	}
}

// SSHServer serves the simulator over SSH. Every connection gets its own
// engine, scene stack and log buffer.
type SSHServer struct {
	config SSHServerConfig
	keymap *keys.Keymap
	server *ssh.Server
	logger *log.Logger

	sessions sync.Map // ssh.Session -> *sim.Session
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.LogOutput == nil {
		cfg.LogOutput = os.Stderr
	}
	logger := log.NewWithOptions(cfg.LogOutput, log.Options{
		ReportTimestamp: true,
		Prefix:          "tama-ssh",
		Level:           cfg.LogLevel,
	})

	km, err := keys.NewKeymap(cfg.Config.Input)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config: cfg,
		keymap: km,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tama", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a simulator session and its model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model, err := s.newModel(sshSession.User(), pty.Window.Width, pty.Window.Height, bubbletea.MakeRenderer(sshSession))
	if err != nil {
		s.logger.Error("cannot start session", "user", sshSession.User(), "err", err)
		return nil, nil
	}
	s.sessions.Store(sshSession, model.Session())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) newModel(user string, width, height int, r *lipgloss.Renderer) (Model, error) {
	cfg := s.config.Config
	logger, buf := logging.New(logging.Options{
		Output:     s.config.LogOutput,
		Level:      s.config.LogLevel,
		Prefix:     user,
		Timestamps: true,
	})
	tones := NewLogBuzzer(logger)

	session, err := sim.Start(sim.Options{
		Config:   cfg,
		Platform: "ssh",
		Logger:   logger,
		Logs:     buf,
		Buzzer:   tones,
		Store:    s.config.Store,
	})
	if err != nil {
		return Model{}, err
	}

	return NewModel(session, Options{
		Keymap:            s.keymap,
		ReleaseAfterTicks: cfg.Input.ReleaseAfterTicks,
		Downscale:         cfg.Simulator.TUIDownscale,
		ShowPanel:         cfg.Simulator.ShowPanel,
		ScreenshotDir:     cfg.Simulator.ScreenshotDir,
		Title:             cfg.Simulator.Title + " @ " + user,
		Width:             width,
		Height:            height,
		Renderer:          r,
		Tones:             tones,
	}), nil
}

// sessionMiddleware logs SSH session events and closes the simulator once
// the program has exited.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)

		if v, ok := s.sessions.LoadAndDelete(sshSession); ok {
			if err := v.(*sim.Session).Close("disconnect"); err != nil {
				s.logger.Warn("cannot close session", "user", sshSession.User(), "err", err)
			}
		}
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
