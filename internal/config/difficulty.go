package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0).
// Disabled difficulty always reports 0 so the base tunables apply unchanged.
func (d *DifficultyManager) Level(score float64, elapsed time.Duration) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = score / maxAt
	case "time":
		progress = elapsed.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the wall speed for the current level.
func (d *DifficultyManager) Speed(base, score float64, elapsed time.Duration) float64 {
	level := d.Level(score, elapsed)
	return base * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Opening returns the gap size for the current level, never below minOpening.
func (d *DifficultyManager) Opening(base, minOpening, score float64, elapsed time.Duration) float64 {
	level := d.Level(score, elapsed)
	return math.Max(minOpening, base-level*d.cfg.Scaling.OpeningReduction)
}

// SpawnInterval returns the wall spawn period for the current level.
// It never drops below half of the base interval.
func (d *DifficultyManager) SpawnInterval(base time.Duration, score float64, elapsed time.Duration) time.Duration {
	level := d.Level(score, elapsed)
	factor := math.Max(0.5, 1.0-level*d.cfg.Scaling.SpawnReduction)
	return time.Duration(float64(base) * factor)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
