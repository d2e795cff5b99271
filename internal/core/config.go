package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (or pixels for the desktop host)
	ScreenH  int   // Screen height in characters (or pixels for the desktop host)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the simulated time covered by one tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.rate())
}

// TickTime returns the simulated time after n ticks. It is computed from
// the count rather than by summing TickInterval, which truncates.
func (c RuntimeConfig) TickTime(n int64) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(c.rate())
}

func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    float64       // Current score
	Walls    int           // Obstacles passed in the current run
	GameOver bool          // Whether the run has ended
	Paused   bool          // Whether the game clock is paused
	Phase    string        // Human-readable phase name
	Elapsed  time.Duration // Time spent in the current run
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
