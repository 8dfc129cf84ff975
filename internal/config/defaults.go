package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bomber.yaml
var defaultBomberYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultBomberConfig returns the default bomb game configuration.
func DefaultBomberConfig() BomberConfig {
	return BomberConfig{
		Arena: BomberArena{
			Width:       15,
			Height:      13,
			TileSize:    40,
			BlockChance: 0.3,
			ClearStart:  [][2]int{{1, 1}, {1, 2}, {2, 1}},
		},
		Player: BomberPlayer{
			Start:        [2]int{1, 1},
			BombsAllowed: 1,
			BombRange:    2,
		},
		Bombs: BomberBombs{
			Fuse:        3 * time.Second,
			Explosion:   500 * time.Millisecond,
			PulsePeriod: 500 * time.Millisecond,
		},
		Rules: BomberRules{
			BlockPoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				BlockChanceBonus: 0.3,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Arena: PongArena{
			Width:       800,
			Height:      400,
			GridSpacing: 20,
		},
		Physics: PongPhysics{
			BallSpeed:     7,
			BallSize:      15,
			PaddleSpeed:   7,
			HitMultiplier: 1.1,
			HitTrigger:    HitTriggerEdge,
		},
		Paddles: PongPaddles{
			Width:  15,
			Height: 90,
			Offset: 50,
		},
		Gameplay: PongGameplay{
			WinScore: 0,
		},
		CPU: PongCPU{
			SpeedFactor: 0.5,
			MaxFactor:   0.9,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 36000, // 10 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.8,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bomber":
		return defaultBomberYAML
	case "pong":
		return defaultPongYAML
	default:
		return nil
	}
}
