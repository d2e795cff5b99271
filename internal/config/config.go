// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all tunables for the jet-flap game.
// Distances are world pixels, speeds pixels/second.
type FlappyConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Walls      WallConfig       `yaml:"walls"`
	Player     PlayerConfig     `yaml:"player"`
	Timing     TimingConfig     `yaml:"timing"`
	Background BackgroundConfig `yaml:"background"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig is the size of the visible play area.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines motion parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	Jet            float64 `yaml:"jet"`             // upward impulse magnitude
	Speed          float64 `yaml:"speed"`           // leftward wall speed
	GlideThreshold float64 `yaml:"glide_threshold"` // vy above this shows the glide frame
}

// WallConfig defines wall geometry and spawning.
type WallConfig struct {
	Opening       float64       `yaml:"opening"`
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	MinCenter     float64       `yaml:"min_center"` // fraction of world height
	MaxCenter     float64       `yaml:"max_center"` // fraction of world height
}

// PlayerConfig defines the player sprite.
type PlayerConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	StartX    float64 `yaml:"start_x"` // fraction of world width
	FlyFPS    int     `yaml:"fly_fps"`
	FlyFrames int     `yaml:"fly_frames"`
}

// TimingConfig defines non-physics timings.
type TimingConfig struct {
	ResetCooldown  time.Duration `yaml:"reset_cooldown"`
	HoverAmplitude float64       `yaml:"hover_amplitude"`
	HoverPeriod    time.Duration `yaml:"hover_period"` // divisor applied to the clock before cos()
}

// BackgroundConfig defines the auto-scrolling backdrop.
type BackgroundConfig struct {
	ScrollFactor float64 `yaml:"scroll_factor"` // fraction of wall speed
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "score", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // score, or seconds, at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // added to 1.0 and applied to wall speed
	OpeningReduction float64 `yaml:"opening_reduction"` // pixels removed from the gap
	SpawnReduction   float64 `yaml:"spawn_reduction"`   // fraction removed from the spawn interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means "use the config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate rejects configurations the game cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Walls.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("walls.spawn_interval must be positive, got %v", c.Walls.SpawnInterval))
	}
	if c.Walls.Opening <= 0 {
		errs = append(errs, fmt.Errorf("walls.opening must be positive, got %g", c.Walls.Opening))
	}
	if c.Walls.Width <= 0 || c.Walls.Height <= 0 {
		errs = append(errs, errors.New("walls.width and walls.height must be positive"))
	}
	if c.Walls.MinCenter > c.Walls.MaxCenter {
		errs = append(errs, fmt.Errorf("walls.min_center %g exceeds max_center %g", c.Walls.MinCenter, c.Walls.MaxCenter))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
	}
	return nil
}
