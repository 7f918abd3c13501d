package tractor

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tractor-plow/internal/config"
)

// Status is the simulation state machine position.
type Status int

const (
	StatusRunning Status = iota
	StatusEnded
)

func (s Status) String() string {
	if s == StatusEnded {
		return "ended"
	}
	return "running"
}

// GameState is the mutable context shared by the rule components. The Sim
// owns it and passes it by pointer; nothing else keeps a reference.
type GameState struct {
	Score     int
	StartedAt time.Time
	EndedAt   time.Time
	Running   bool
	Status    Status
	Reason    EndReason

	LastMoveAt   time.Time // zero until the first move
	MoveInterval time.Duration

	DoublePoints    bool
	DoublePointsEnd time.Time
	SpeedBoostEnd   time.Time

	Weather       Weather
	TimeOfDay     TimeOfDay
	CycleAnchor   time.Time
	NextWeatherAt time.Time
}

// RunResult summarizes a finished run.
type RunResult struct {
	Reason          EndReason
	Score           int
	FinalScore      int
	ElapsedSeconds  int
	ProgressPercent int
}

// Spawn is where every run starts, facing east.
var Spawn = Pos{Row: 1, Col: 1}

// Sim is the tick-driven simulation. It is not safe for concurrent use;
// the host calls Tick once per frame from a single goroutine.
type Sim struct {
	cfg     config.TractorConfig
	rng     *rand.Rand
	base    time.Duration
	rules   ScoreRules
	effects Effects
	sky     *Sky

	field *Field
	ctrl  *Controller
	state GameState
	tick  uint64
}

// NewSim generates a field from rng and starts a run at now.
func NewSim(cfg config.TractorConfig, rng *rand.Rand, now time.Time) (*Sim, error) {
	s := newSim(cfg, rng)
	if err := s.Restart(now); err != nil {
		return nil, err
	}
	return s, nil
}

func newSim(cfg config.TractorConfig, rng *rand.Rand) *Sim {
	return &Sim{
		cfg:     cfg,
		rng:     rng,
		base:    cfg.Movement.BaseInterval(),
		rules:   NewScoreRules(cfg.Scoring, cfg.Movement),
		effects: NewEffects(cfg),
		sky:     NewSky(cfg.Cycle, rng),
	}
}

// newSimWithField starts a run on a prepared field. The field must hold
// the tractor at spawn.
func newSimWithField(cfg config.TractorConfig, rng *rand.Rand, f *Field, spawn Pos, now time.Time) *Sim {
	s := newSim(cfg, rng)
	s.start(f, spawn, now)
	return s
}

// Restart throws away the current run and begins a fresh one on a newly
// generated field. On error the previous run is left as it was.
func (s *Sim) Restart(now time.Time) error {
	f, err := GenerateField(s.cfg.Field, Spawn, s.rng)
	if err != nil {
		return err
	}
	s.start(f, Spawn, now)
	return nil
}

func (s *Sim) start(f *Field, spawn Pos, now time.Time) {
	s.field = f
	s.ctrl = NewController(spawn, HeadingEast, s.cfg.Movement.TrackLength, s.rules)
	s.tick = 0
	s.state = GameState{
		StartedAt:    now,
		Running:      true,
		Status:       StatusRunning,
		MoveInterval: s.base,
	}
	s.sky.Start(&s.state, now)
}

// Steer buffers a heading change for the next move.
func (s *Sim) Steer(h Heading) bool {
	if s.state.Status == StatusEnded {
		return false
	}
	return s.ctrl.Steer(h)
}

// Tick advances the simulation to now and returns the resulting snapshot.
func (s *Sim) Tick(now time.Time) Snapshot {
	if s.state.Status == StatusEnded {
		return s.snapshot(now, false)
	}
	s.tick++
	s.effects.Expire(&s.state, now)

	moved := false
	if s.moveDue(now) {
		s.state.LastMoveAt = now
		out := s.ctrl.Advance(s.field, s.state.Weather, s.effects.DoublePointsActive(&s.state, now))
		if out.Collision != EndNone {
			s.end(out.Collision, now)
			return s.snapshot(now, false)
		}
		moved = true
		s.state.Score = s.rules.Apply(s.state.Score, out.Points)
		if out.Collected {
			s.field.RemovePowerUp(out.PowerUp.Pos)
			s.effects.Activate(&s.state, out.PowerUp.Kind, now)
		}
		s.state.MoveInterval = s.effects.MoveInterval(&s.state, now, s.base, out.SpeedModifier)
	}

	s.sky.Update(&s.state, now)

	if s.rules.Complete(s.field) {
		s.end(EndFieldComplete, now)
	}
	return s.snapshot(now, moved)
}

func (s *Sim) moveDue(now time.Time) bool {
	if s.state.LastMoveAt.IsZero() {
		return true
	}
	return now.Sub(s.state.LastMoveAt) >= s.state.MoveInterval
}

func (s *Sim) end(reason EndReason, now time.Time) {
	s.state.Status = StatusEnded
	s.state.Running = false
	s.state.Reason = reason
	s.state.EndedAt = now
}

// Shift moves every stored timestamp forward by d. The host calls it when
// resuming from a pause so that no effect or cycle runs while paused.
func (s *Sim) Shift(d time.Duration) {
	st := &s.state
	st.StartedAt = st.StartedAt.Add(d)
	if !st.LastMoveAt.IsZero() {
		st.LastMoveAt = st.LastMoveAt.Add(d)
	}
	if !st.DoublePointsEnd.IsZero() {
		st.DoublePointsEnd = st.DoublePointsEnd.Add(d)
	}
	if !st.SpeedBoostEnd.IsZero() {
		st.SpeedBoostEnd = st.SpeedBoostEnd.Add(d)
	}
	st.CycleAnchor = st.CycleAnchor.Add(d)
	st.NextWeatherAt = st.NextWeatherAt.Add(d)
}

// State returns a copy of the game state.
func (s *Sim) State() GameState {
	return s.state
}

// Snapshot returns the current state without ticking.
func (s *Sim) Snapshot(now time.Time) Snapshot {
	return s.snapshot(now, false)
}

// Result returns the run summary once the run has ended.
func (s *Sim) Result() (RunResult, bool) {
	if s.state.Status != StatusEnded {
		return RunResult{}, false
	}
	elapsed := s.elapsedSeconds(s.state.EndedAt)
	return RunResult{
		Reason:          s.state.Reason,
		Score:           s.state.Score,
		FinalScore:      s.rules.FinalScore(s.state.Score, elapsed),
		ElapsedSeconds:  elapsed,
		ProgressPercent: ProgressPercent(s.field),
	}, true
}

// elapsedSeconds is the run time up to now, frozen at the end of the run.
func (s *Sim) elapsedSeconds(now time.Time) int {
	if s.state.Status == StatusEnded {
		now = s.state.EndedAt
	}
	return int(math.Round(now.Sub(s.state.StartedAt).Seconds()))
}
