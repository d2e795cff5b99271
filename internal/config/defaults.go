package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:  800,
			Height: 480,
		},
		Physics: PhysicsConfig{
			Gravity:        900,
			Jet:            420,
			Speed:          200,
			GlideThreshold: -20,
		},
		Walls: WallConfig{
			Opening:       200,
			Width:         52,
			Height:        480,
			SpawnInterval: 1250 * time.Millisecond,
			MinCenter:     0.3,
			MaxCenter:     0.7,
		},
		Player: PlayerConfig{
			Width:     48,
			Height:    48,
			StartX:    0.25,
			FlyFPS:    10,
			FlyFrames: 3,
		},
		Timing: TimingConfig{
			ResetCooldown:  400 * time.Millisecond,
			HoverAmplitude: 8,
			HoverPeriod:    200 * time.Millisecond,
		},
		Background: BackgroundConfig{
			ScrollFactor: 0.8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.75,
				OpeningReduction: 60,
				SpawnReduction:   0.3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy":
		return defaultFlappyYAML
	default:
		return nil
	}
}
