package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the tama configuration.
// Search order: customPath -> ~/.tama/config.yaml -> ./configs/tama.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came from
// ("embedded" or "default" when no file was used).
func LoadWithSource(customPath string) (Config, string, error) {
	return load(customPath, searchPaths())
}

func load(customPath string, paths []string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		path := ExpandHome(customPath)
		data, err := os.ReadFile(path)
		if err != nil {
			return Default(), "", fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Default(), "", fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, path, nil
	}

	// Try user and local config files
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), "default", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Parse decodes a YAML document on top of Default, so a partial file only
// overrides the keys it names. The result is validated.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// searchPaths returns the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".tama", "config.yaml"))
	}
	return append(paths, filepath.Join("configs", "tama.yaml"))
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks values the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", c.Display.Width, c.Display.Height))
	}
	if c.Engine.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("engine.tick_rate %d must be positive", c.Engine.TickRate))
	}
	if c.Engine.TimingEvery < 0 {
		errs = append(errs, errors.New("engine.timing_every must not be negative"))
	}
	if c.Input.ReleaseAfterTicks < 1 {
		errs = append(errs, errors.New("input.release_after_ticks must be at least 1"))
	}
	if c.Simulator.Scale < 1 {
		errs = append(errs, errors.New("simulator.scale must be at least 1"))
	}
	o := c.Flappy.Obstacles
	if o.MinGapSize <= 0 || o.MinGapSize > o.MaxGapSize {
		errs = append(errs, fmt.Errorf("flappy gap range %d..%d is invalid", o.MinGapSize, o.MaxGapSize))
	}
	if o.MaxPipes < 1 || o.PipeWidth < 1 || o.PipeSpacing < 1 {
		errs = append(errs, errors.New("flappy pipe_width, pipe_spacing and max_pipes must be positive"))
	}
	if c.Selftest.TicksPerNote < 1 {
		errs = append(errs, errors.New("selftest.ticks_per_note must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ParsePreset parses a difficulty preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(s)); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
