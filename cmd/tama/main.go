// tama runs the handheld engine core in desktop simulators.
//
// Usage:
//
//	tama list                 - List registered scenes
//	tama play [scene]         - Run the terminal simulator
//	tama window [scene]       - Run the Ebitengine window simulator
//	tama sdl [scene]          - Run the SDL window simulator (build tag sdl)
//	tama serve                - Serve the terminal simulator over SSH
//	tama sessions             - List recorded input sessions
//	tama replay <id>          - Replay a recorded session
//	tama config               - Print the built-in configuration
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.tama/config.yaml, configs/tama.yaml)
//	--fps <rate>         - Tick rate (default: 30)
//	--seed <value>       - RNG seed for reproducible runs
//	--log-level <level>  - debug, info, warn, error
//	--journal            - Record input to the journal database
//	--db <path>          - Journal database path (default: ~/.tama/journal.db)
//	--difficulty <name>  - Flappy difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/tama/internal/scenes/dvd"
	_ "github.com/vovakirdan/tama/internal/scenes/flappy"
	_ "github.com/vovakirdan/tama/internal/scenes/menu"
	_ "github.com/vovakirdan/tama/internal/scenes/pause"
	_ "github.com/vovakirdan/tama/internal/scenes/selftest"
)

var (
	// Global flags
	flagConfig     string
	flagFPS        int
	flagSeed       int64
	flagLogLevel   string
	flagJournal    bool
	flagDBPath     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tama",
	Short: "tama - handheld game engine simulator",
	Long: `tama runs the handheld's engine core (input manager, scene stack and
the built-in scenes) on the desktop, in a terminal, a window or over SSH.

Buttons (configurable under input.keymap):
  W/A/S/D or arrows  - D-pad
  J or Space         - A
  K or Backspace     - B
  Esc or Ctrl+C      - Quit the simulator

Examples:
  tama play
  tama play flappy --difficulty hard
  tama window dvd --fps 60
  tama play --journal && tama sessions && tama replay 1 --png last.png
  tama serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagJournal, "journal", false, "Record input to the journal database")
	pf.StringVar(&flagDBPath, "db", "", "Path to journal database (default from config)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Flappy difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
