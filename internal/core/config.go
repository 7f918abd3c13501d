package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay

	// Clock supplies wall-clock time to the simulation.
	// Nil means time.Now; tests inject a fake clock.
	Clock func() time.Time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Now returns the current time from the configured clock.
func (c RuntimeConfig) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // Whether the player advanced this tick
}

// RunSummary describes a finished run for the platform layer.
type RunSummary struct {
	Reason      string // Why the run ended, human readable
	Score       int    // Score before the end bonus
	FinalScore  int    // Score including the end bonus
	ElapsedSecs int
	ProgressPct int
}
