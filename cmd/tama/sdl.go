//go:build sdl

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/platform/sdlwin"
	"github.com/vovakirdan/tama/internal/registry"
	"github.com/vovakirdan/tama/internal/sim"
)

var sdlCmd = &cobra.Command{
	Use:   "sdl [scene]",
	Short: "Run the SDL window simulator",
	Long: `Run the engine in an SDL2 window. Requires a build with -tags sdl.

Examples:
  tama sdl
  tama sdl dvd`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSDL,
}

func init() {
	rootCmd.AddCommand(sdlCmd)
}

func runSDL(_ *cobra.Command, args []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	root := rootArg(args)
	if root != "" && !registry.Exists(root) {
		return fmt.Errorf("unknown scene %q, run 'tama list' to see available scenes", root)
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

	if err := sdlwin.Init(); err != nil {
		return err
	}
	defer sdlwin.Quit()

	opts := sim.Options{
		Config:   cfg,
		Platform: "sdl",
		Root:     root,
		Logger:   logger,
		Logs:     buf,
	}
	if buzzer, err := sdlwin.OpenBuzzer(); err != nil {
		logger.Warn("no audio", "err", err)
	} else {
		defer buzzer.Close()
		opts.Buzzer = buzzer
	}

	store := openJournal(cfg, logger)
	if store != nil {
		defer store.Close()
		opts.Store = store
	}

	session, err := sim.Start(opts)
	if err != nil {
		return err
	}

	runErr := sdlwin.Run(session, sdlwin.Options{
		Keymap: km,
		Scale:  cfg.Simulator.Scale,
		Title:  cfg.Simulator.Title,
	})
	reason := "quit"
	if runErr != nil {
		reason = runErr.Error()
	}
	if err := session.Close(reason); err != nil {
		logger.Warn("cannot close session", "err", err)
	}
	return runErr
}
