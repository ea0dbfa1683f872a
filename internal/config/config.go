// Package config provides YAML-based configuration loading for the engine,
// the simulators and the built-in scenes, plus difficulty management.
package config

// Config is the whole tama configuration document.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Engine    EngineConfig    `yaml:"engine"`
	Input     InputConfig     `yaml:"input"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Logging   LoggingConfig   `yaml:"logging"`
	Journal   JournalConfig   `yaml:"journal"`
	Flappy    FlappyConfig    `yaml:"flappy"`
	Selftest  SelftestConfig  `yaml:"selftest"`
	Dvd       DvdConfig       `yaml:"dvd"`
}

// DisplayConfig describes the emulated panel.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// EngineConfig controls the fixed-step loop.
type EngineConfig struct {
	TickRate    int    `yaml:"tick_rate"`    // Ticks per second
	TimingEvery int    `yaml:"timing_every"` // Log frame timing every N ticks, 0 = once per second
	Seed        int64  `yaml:"seed"`         // 0 picks a seed at startup
	RootScene   string `yaml:"root_scene"`   // Registry id of the first scene
}

// InputConfig maps backend key names to buttons.
type InputConfig struct {
	Keymap map[string][]string `yaml:"keymap"` // Button name -> key names
	Quit   []string            `yaml:"quit"`
	// ReleaseAfterTicks synthesizes a release for backends that only report
	// key presses (terminals). A repeat before it expires keeps the key held.
	ReleaseAfterTicks int `yaml:"release_after_ticks"`
}

// SimulatorConfig controls the desktop front-ends.
type SimulatorConfig struct {
	Title         string `yaml:"title"`
	Scale         int    `yaml:"scale"`         // Window pixel scale
	TUIDownscale  int    `yaml:"tui_downscale"` // 0 = fit the terminal
	ShowPanel     bool   `yaml:"show_panel"`    // Side panel with stack and logs
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig controls the logger and the on-screen capture.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	CaptureLevel string `yaml:"capture_level"`
	File         string `yaml:"file"` // Used by the TUI, which owns the terminal
}

// JournalConfig controls the input journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FlappyConfig contains all configuration for the flappy scene.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters, in pixels per tick.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	ScrollSpeed  float64 `yaml:"scroll_speed"`
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	PipeWidth      int `yaml:"pipe_width"`
	PipeSpacing    int `yaml:"pipe_spacing"`
	MinGapSize     int `yaml:"min_gap_size"`
	MaxGapSize     int `yaml:"max_gap_size"`
	GapCenterRange int `yaml:"gap_center_range"` // Gap centre varies by +-range around mid screen
	MaxPipes       int `yaml:"max_pipes"`
}

// FlappyPlayer defines the bird.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Radius int `yaml:"radius"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
	MinGap           int     `yaml:"min_gap"`
	MinSpacing       int     `yaml:"min_spacing"`
}

// SelftestConfig controls the boot scene.
type SelftestConfig struct {
	LogDisplayMs int    `yaml:"log_display_ms"`
	FinalDelayMs int    `yaml:"final_delay_ms"`
	MaxLogLines  int    `yaml:"max_log_lines"`
	Tune         []int  `yaml:"tune"`    // Note frequencies in Hz
	NoteMs       int    `yaml:"note_ms"` // Buzzer duration per note
	TicksPerNote int    `yaml:"ticks_per_note"`
	Next         string `yaml:"next"` // Scene that replaces the self test
}

// DvdConfig controls the bouncing ball demo.
type DvdConfig struct {
	Radius int `yaml:"radius"`
	Speed  int `yaml:"speed"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
