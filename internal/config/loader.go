package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config.
// Search order: customPath -> ~/.arcade/configs/<name> -> ./configs/<name> -> embedded default.
// Files are decoded on top of fallback, so a partial file only overrides what it names.
func load[T any](customPath, name string, embedded []byte, fallback T) (T, error) {
	cfg := fallback

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(name); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = fallback
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", name)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = fallback
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadBomber loads the bomb game configuration and validates it.
func LoadBomber(customPath string) (BomberConfig, error) {
	cfg, err := load(customPath, "bomber.yaml", defaultBomberYAML, DefaultBomberConfig())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultBomberConfig(), err
	}
	return cfg, nil
}

// LoadPong loads Pong configuration and validates it.
func LoadPong(customPath string) (PongConfig, error) {
	cfg, err := load(customPath, "pong.yaml", defaultPongYAML, DefaultPongConfig())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultPongConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

func applyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
	} else {
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyBomberPreset modifies the config based on a difficulty preset.
func ApplyBomberPreset(cfg *BomberConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.BombsAllowed = 2
		cfg.Player.BombRange = 3
	case DifficultyHard:
		cfg.Player.BombRange = 1
		cfg.Rules.BlastStopsAtWalls = true
	}
}

// ApplyPongPreset modifies the config based on a difficulty preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.CPU.SpeedFactor = 0.35
	case DifficultyHard:
		cfg.CPU.SpeedFactor = 0.7
		cfg.Physics.HitTrigger = HitTriggerLevel
	}
}
