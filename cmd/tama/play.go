package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/platform/tui"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/sim"
)

var flagDownscale int

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Run the terminal simulator",
	Long: `Run the engine in the terminal. Every two display rows are drawn as one
line of half-block characters; the display is downscaled to fit the terminal
unless --downscale is given.

Terminals report key presses but not releases, so a pressed key is held for
input.release_after_ticks ticks and extended by key repeat.

Without a scene argument the configured root scene is started (the self
test, which continues to the menu). Games start on top of the menu.

Simulator keys:
  Ctrl+S  - Save a PNG screenshot
  Tab     - Toggle the side panel

Logs are written to logging.file while the simulator owns the terminal.

Examples:
  tama play
  tama play flappy
  tama play dvd --downscale 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagDownscale, "downscale", 0, "Pixel downscale (0 = fit the terminal)")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	root := rootArg(args)
	if root != "" && !registry.Exists(root) {
		return fmt.Errorf("unknown scene %q, run 'tama list' to see available scenes", root)
	}
	if flagDownscale > 0 {
		cfg.Simulator.TUIDownscale = flagDownscale
	}

	km, err := keys.NewKeymap(cfg.Input)
	if err != nil {
		return err
	}

	logPath := config.ExpandHome(cfg.Logging.File)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()

	logger, buf, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}
	logger.Info("config loaded", "source", source)

	store := openJournal(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	tones := tui.NewLogBuzzer(logger)
	session, err := sim.Start(sim.Options{
		Config:   cfg,
		Platform: "tui",
		Root:     root,
		Logger:   logger,
		Logs:     buf,
		Buzzer:   tones,
		Store:    store,
	})
	if err != nil {
		return err
	}

	// Get terminal size early so the first frame already fits
	width, height := 0, 0
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	model := tui.NewModel(session, tui.Options{
		Keymap:            km,
		ReleaseAfterTicks: cfg.Input.ReleaseAfterTicks,
		Downscale:         cfg.Simulator.TUIDownscale,
		ShowPanel:         cfg.Simulator.ShowPanel,
		ScreenshotDir:     config.ExpandHome(cfg.Simulator.ScreenshotDir),
		Title:             cfg.Simulator.Title,
		Width:             width,
		Height:            height,
		Tones:             tones,
	})

	runErr := tui.Run(model)
	reason := "quit"
	if runErr != nil {
		reason = runErr.Error()
	}
	if err := session.Close(reason); err != nil {
		logger.Warn("cannot close session", "err", err)
	}
	if session.Recorder != nil {
		fmt.Printf("Recorded session %d. Replay with: tama replay %d\n", session.Recorder.ID(), session.Recorder.ID())
	}
	return runErr
}
