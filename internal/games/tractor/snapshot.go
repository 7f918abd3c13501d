package tractor

import "time"

// Snapshot is an immutable view of one tick, handed to renderers and
// tests. Mutating it never affects the simulation.
type Snapshot struct {
	Tick      uint64
	Moved     bool
	State     GameState
	Field     *Field // private copy
	Tractor   Tractor
	Pending   Heading
	PowerUps  []PowerUp
	Obstacles []Obstacle
	Track     []Pos

	ElapsedSeconds  int
	ProgressPercent int
	WeatherLabel    string
	TimeOfDayLabel  string

	SpeedBoost       bool
	SpeedBoostLeft   time.Duration
	DoublePoints     bool
	DoublePointsLeft time.Duration

	// Set once the run has ended.
	Reason     EndReason
	FinalScore int
}

// Ended reports whether the snapshot was taken after the run ended.
func (s Snapshot) Ended() bool {
	return s.State.Status == StatusEnded
}

func (s *Sim) snapshot(now time.Time, moved bool) Snapshot {
	if s.state.Status == StatusEnded {
		now = s.state.EndedAt
	}
	snap := Snapshot{
		Tick:            s.tick,
		Moved:           moved,
		State:           s.state,
		Field:           s.field.Clone(),
		Tractor:         s.ctrl.Tractor(),
		Pending:         s.ctrl.Pending(),
		PowerUps:        s.field.PowerUps(),
		Obstacles:       s.field.Obstacles(),
		Track:           s.ctrl.Track().Positions(),
		ElapsedSeconds:  s.elapsedSeconds(now),
		ProgressPercent: ProgressPercent(s.field),
		WeatherLabel:    s.state.Weather.String(),
		TimeOfDayLabel:  s.state.TimeOfDay.String(),
		SpeedBoost:      s.effects.SpeedBoostActive(&s.state, now),
		DoublePoints:    s.effects.DoublePointsActive(&s.state, now),
	}
	if snap.SpeedBoost {
		snap.SpeedBoostLeft = s.state.SpeedBoostEnd.Sub(now)
	}
	if snap.DoublePoints {
		snap.DoublePointsLeft = s.state.DoublePointsEnd.Sub(now)
	}
	if res, ok := s.Result(); ok {
		snap.Reason = res.Reason
		snap.FinalScore = res.FinalScore
	}
	return snap
}
