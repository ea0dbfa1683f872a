package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/platform/window"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/sim"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window [scene]",
	Short: "Run the window simulator",
	Long: `Run the engine in a desktop window with real key releases and a
square-wave buzzer.

Simulator keys:
  F12  - Save a PNG screenshot

Examples:
  tama window
  tama window flappy --scale 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 0, "Window pixels per display pixel (0 = from config)")
}

func runWindow(_ *cobra.Command, args []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	root := rootArg(args)
	if root != "" && !registry.Exists(root) {
		return fmt.Errorf("unknown scene %q, run 'tama list' to see available scenes", root)
	}
	if flagScale > 0 {
		cfg.Simulator.Scale = flagScale
	}

	km, err := keys.NewKeymap(cfg.Input)
	if err != nil {
		return err
	}

	logger, buf, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	logger.Info("config loaded", "source", source)

	store := openJournal(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	session, err := sim.Start(sim.Options{
		Config:   cfg,
		Platform: "window",
		Root:     root,
		Logger:   logger,
		Logs:     buf,
		Buzzer:   window.NewBuzzer(),
		Store:    store,
	})
	if err != nil {
		return err
	}

	g := window.New(session, window.Options{
		Keymap:        km,
		Scale:         cfg.Simulator.Scale,
		Title:         cfg.Simulator.Title,
		ScreenshotDir: config.ExpandHome(cfg.Simulator.ScreenshotDir),
	})

	runErr := window.Run(g)
	reason := "quit"
	if runErr != nil {
		reason = runErr.Error()
	}
	if err := session.Close(reason); err != nil {
		logger.Warn("cannot close session", "err", err)
	}
	return runErr
}
