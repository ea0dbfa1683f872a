package config

import (
	_ "embed"
)

//go:embed defaults/tama.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/tama.yaml.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Width:  240,
			Height: 280,
		},
		Engine: EngineConfig{
			TickRate:    30,
			TimingEvery: 0,
			Seed:        0,
			RootScene:   "selftest",
		},
		Input: InputConfig{
			Keymap: map[string][]string{
				"up":    {"w", "up"},
				"down":  {"s", "down"},
				"left":  {"a", "left"},
				"right": {"d", "right"},
				"a":     {"j", "space"},
				"b":     {"k", "backspace"},
			},
			Quit:              []string{"esc", "ctrl+c"},
			ReleaseAfterTicks: 6,
		},
		Simulator: SimulatorConfig{
			Title:         "tama",
			Scale:         2,
			TUIDownscale:  0,
			ShowPanel:     true,
			ScreenshotDir: ".",
		},
		Logging: LoggingConfig{
			Level:        "info",
			CaptureLevel: "info",
			File:         "~/.tama/tama.log",
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "~/.tama/journal.db",
		},
		Flappy: DefaultFlappyConfig(),
		Selftest: SelftestConfig{
			LogDisplayMs: 2000,
			FinalDelayMs: 3000,
			MaxLogLines:  16,
			Tune:         []int{293, 329, 349, 329, 293, 261, 261, 261, 261, 261},
			NoteMs:       50,
			TicksPerNote: 3,
			Next:         "menu",
		},
		Dvd: DvdConfig{
			Radius: 64,
			Speed:  1,
		},
	}
}

// DefaultFlappyConfig returns the default flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.7,
			JumpVelocity: 7.0,
			MaxFallSpeed: 12.0,
			ScrollSpeed:  1.0,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:      32,
			PipeSpacing:    100,
			MinGapSize:     64,
			MaxGapSize:     128,
			GapCenterRange: 64,
			MaxPipes:       8,
		},
		Player: FlappyPlayer{
			X:      32,
			Radius: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     40,
				SpacingReduction: 30,
				MinGap:           56,
				MinSpacing:       64,
			},
		},
	}
}

// DefaultYAML returns the embedded default document.
func DefaultYAML() []byte {
	return defaultYAML
}
