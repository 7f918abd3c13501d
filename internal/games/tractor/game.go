package tractor

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tractor-plow/internal/config"
	"github.com/vovakirdan/tractor-plow/internal/core"
)

// Game adapts the simulation to the frame-driven platform host.
// It maps input actions to headings, handles pause and restart,
// and draws the latest snapshot.
type Game struct {
	cfg     config.TractorConfig
	runtime core.RuntimeConfig
	sim     *Sim
	snap    Snapshot
	initErr error

	paused   bool
	halted   bool
	haltedAt time.Time

	screenW int
	screenH int
}

// Identity used by the host and the runs store.
const (
	GameID    = "tractor"
	GameTitle = "Tractor Plow"
)

// New creates a tractor game with the given configuration.
func New(cfg config.TractorConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return GameTitle
}

// Reset starts a new run. A configuration that cannot produce a field is
// returned as an error and also shown on screen.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	g.runtime = rt
	g.screenW = rt.ScreenW
	g.screenH = rt.ScreenH
	g.paused = false
	g.halted = false

	now := rt.Now()
	sim, err := NewSim(g.cfg, rand.New(rand.NewSource(rt.Seed)), now)
	if err != nil {
		g.sim = nil
		g.initErr = err
		return err
	}
	g.sim = sim
	g.initErr = nil
	g.snap = sim.Snapshot(now)
	g.setHalted(g.tooSmall(), now)
	return nil
}

// Resize updates the screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}
	now := g.runtime.Now()

	if input.Has(core.ActionRestart) && g.snap.Ended() {
		if err := g.sim.Restart(now); err != nil {
			g.initErr = err
			return core.StepResult{State: g.State()}
		}
		g.paused = false
		g.halted = false
		g.snap = g.sim.Snapshot(now)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.snap.Ended() {
		g.paused = !g.paused
	}
	g.setHalted(g.paused || g.tooSmall(), now)
	if g.halted {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Directions {
		if h, ok := headingFor(a); ok {
			g.sim.Steer(h)
		}
	}

	g.snap = g.sim.Tick(now)
	return core.StepResult{State: g.State(), Moved: g.snap.Moved}
}

// setHalted freezes or resumes simulated time. On resume every timestamp
// is shifted by the time spent halted.
func (g *Game) setHalted(halted bool, now time.Time) {
	if halted == g.halted {
		return
	}
	if halted {
		g.haltedAt = now
	} else if g.sim != nil {
		g.sim.Shift(now.Sub(g.haltedAt))
	}
	g.halted = halted
}

func headingFor(a core.Action) (Heading, bool) {
	switch a {
	case core.ActionUp:
		return HeadingNorth, true
	case core.ActionDown:
		return HeadingSouth, true
	case core.ActionLeft:
		return HeadingWest, true
	case core.ActionRight:
		return HeadingEast, true
	}
	return 0, false
}

// State returns the platform-facing game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.State.Score,
		GameOver: g.snap.Ended() || g.initErr != nil,
		Paused:   g.paused,
	}
}

// Snapshot returns the snapshot of the last tick.
func (g *Game) Snapshot() Snapshot {
	return g.snap
}

// Err returns the error that prevented the last run from starting.
func (g *Game) Err() error {
	return g.initErr
}

// Result returns the summary of the finished run.
func (g *Game) Result() (core.RunSummary, bool) {
	if g.sim == nil {
		return core.RunSummary{}, false
	}
	res, ok := g.sim.Result()
	if !ok {
		return core.RunSummary{}, false
	}
	return core.RunSummary{
		Reason:      res.Reason.String(),
		Score:       res.Score,
		FinalScore:  res.FinalScore,
		ElapsedSecs: res.ElapsedSeconds,
		ProgressPct: res.ProgressPercent,
	}, true
}
