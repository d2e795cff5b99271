package config

import (
	"math"
	"testing"
	"time"
)

func TestDifficultyDisabledKeepsBaseValues(t *testing.T) {
	d := NewDifficultyManager(DefaultFlappyConfig().Difficulty)

	if got := d.Speed(200, 40, time.Minute); got != 200 {
		t.Errorf("Speed() = %g, expected base 200 when disabled", got)
	}
	if got := d.Opening(200, 96, 40, time.Minute); got != 200 {
		t.Errorf("Opening() = %g, expected base 200 when disabled", got)
	}
	if got := d.SpawnInterval(1250*time.Millisecond, 40, time.Minute); got != 1250*time.Millisecond {
		t.Errorf("SpawnInterval() = %v, expected base when disabled", got)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DefaultFlappyConfig().Difficulty
	cfg.Enabled = true
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score float64
		level float64
	}{
		{0, 0},
		{25, 0.5},
		{50, 1},
		{500, 1},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); math.Abs(got-tc.level) > 1e-9 {
			t.Errorf("Level(%g) = %g, expected %g", tc.score, got, tc.level)
		}
	}

	if got := d.Speed(200, 50, 0); math.Abs(got-350) > 1e-9 {
		t.Errorf("Speed at max = %g, expected 350", got)
	}
	if got := d.Opening(200, 96, 50, 0); got != 140 {
		t.Errorf("Opening at max = %g, expected 140", got)
	}
	if got := d.Opening(200, 180, 50, 0); got != 180 {
		t.Errorf("Opening should not drop below minimum, got %g", got)
	}
	if got := d.SpawnInterval(time.Second, 50, 0); got != 700*time.Millisecond {
		t.Errorf("SpawnInterval at max = %v, expected 700ms", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 60},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 30*time.Second); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level at half time = %g, expected 0.75", got)
	}

	cfg.Progression.Type = "none"
	d = NewDifficultyManager(cfg)
	if got := d.Level(100, time.Hour); got != 0.5 {
		t.Errorf("Level with no progression = %g, expected the initial level", got)
	}
}
