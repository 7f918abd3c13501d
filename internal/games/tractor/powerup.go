package tractor

import (
	"math"
	"time"

	"github.com/vovakirdan/tractor-plow/internal/config"
)

// PowerUpKind identifies what a collected power-up does.
type PowerUpKind int

const (
	PowerUpSpeedBoost PowerUpKind = iota
	PowerUpDoublePoints
	PowerUpTimeBonus

	powerUpKindCount
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeedBoost:
		return "speed boost"
	case PowerUpDoublePoints:
		return "double points"
	case PowerUpTimeBonus:
		return "time bonus"
	default:
		return "unknown"
	}
}

// PowerUp is a collectible waiting on the field.
type PowerUp struct {
	Pos  Pos
	Kind PowerUpKind
}

// Effects activates power-ups and expires their timed windows.
// All timing lives in GameState as expiry timestamps compared each tick.
type Effects struct {
	speedBoost    time.Duration
	doublePoints  time.Duration
	timeBonus     int
	rainModifier  float64
	boostModifier float64
}

// NewEffects builds the power-up rules from configuration.
func NewEffects(cfg config.TractorConfig) Effects {
	return Effects{
		speedBoost:    time.Duration(cfg.PowerUps.SpeedBoostMs) * time.Millisecond,
		doublePoints:  time.Duration(cfg.PowerUps.DoublePointsMs) * time.Millisecond,
		timeBonus:     cfg.Scoring.TimeBonusPoints,
		rainModifier:  cfg.Movement.RainModifier,
		boostModifier: cfg.Movement.BoostModifier,
	}
}

// Activate applies a collected power-up at now. Picking up a timed
// power-up again restarts its window.
func (e Effects) Activate(st *GameState, kind PowerUpKind, now time.Time) {
	switch kind {
	case PowerUpSpeedBoost:
		st.SpeedBoostEnd = now.Add(e.speedBoost)
	case PowerUpDoublePoints:
		st.DoublePoints = true
		st.DoublePointsEnd = now.Add(e.doublePoints)
	case PowerUpTimeBonus:
		st.Score += e.timeBonus
	}
}

// Expire clears the double points flag once now reaches its end.
func (e Effects) Expire(st *GameState, now time.Time) {
	if st.DoublePoints && !now.Before(st.DoublePointsEnd) {
		st.DoublePoints = false
	}
}

// DoublePointsActive reports whether scoring is currently multiplied.
func (e Effects) DoublePointsActive(st *GameState, now time.Time) bool {
	return st.DoublePoints && now.Before(st.DoublePointsEnd)
}

// SpeedBoostActive reports whether the speed boost window is open.
func (e Effects) SpeedBoostActive(st *GameState, now time.Time) bool {
	return now.Before(st.SpeedBoostEnd)
}

// MoveInterval computes the time until the next move. Multipliers are
// applied tile first, then rain, then speed boost, and the result is
// rounded to the nearest nanosecond once at the end.
func (e Effects) MoveInterval(st *GameState, now time.Time, base time.Duration, tileModifier float64) time.Duration {
	interval := float64(base) * tileModifier
	if st.Weather == WeatherRainy {
		interval *= e.rainModifier
	}
	if e.SpeedBoostActive(st, now) {
		interval *= e.boostModifier
	}
	return time.Duration(math.Round(interval))
}
