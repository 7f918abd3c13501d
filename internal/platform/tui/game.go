package tui

import "github.com/vovakirdan/tractor-plow/internal/core"

// Game is what the host needs from a game.
// Games contain pure logic with no Bubble Tea dependency; the host
// handles input mapping, timing and terminal output.
type Game interface {
	// ID returns the identifier used for score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new run. The RuntimeConfig provides screen size,
	// RNG seed and clock. An error means the game cannot start.
	Reset(cfg core.RuntimeConfig) error

	// Resize reports a new screen size without restarting the run.
	Resize(w, h int)

	// Step advances the game by one frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState

	// Result returns the summary of a finished run.
	Result() (core.RunSummary, bool)
}
