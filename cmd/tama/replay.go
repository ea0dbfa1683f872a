package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tama/internal/screenshot"
	"github.com/vovakirdan/tama/internal/sim"
)

var (
	flagPNG      string
	flagPNGScale int
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded session headlessly",
	Long: `Feed the recorded input of a session through a fresh engine with the
same seed, root scene, tick rate and display size, then report where it
ended. The scenes use the current configuration.

Examples:
  tama replay 3
  tama replay 3 --png final.png --scale 3`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagPNG, "png", "", "Write the final frame to this PNG file")
	replayCmd.Flags().IntVar(&flagPNGScale, "scale", 2, "Pixel scale of the PNG")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger, buf, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	session, replayErr := sim.Replay(store, id, sim.Options{
		Config: cfg,
		Logger: logger,
		Logs:   buf,
	})
	if session == nil {
		return replayErr
	}
	defer session.Close("replay")

	eng := session.Engine
	fmt.Printf("Replayed session %d: %d ticks, seed %d\n", id, eng.TickCount(), session.Env.Seed)
	fmt.Printf("Scene stack: %v\n", eng.SceneNames())

	if flagPNG != "" {
		err := screenshot.Save(flagPNG, session.Frame(), screenshot.Options{
			Scale:   flagPNGScale,
			Caption: fmt.Sprintf("session %d  tick %d  %s", id, eng.TickCount(), eng.TopName()),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Final frame written to %s\n", flagPNG)
	}
	return replayErr
}
