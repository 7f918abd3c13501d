// Package config provides YAML-based game configuration loading and
// difficulty presets for the plow game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a configuration cannot produce a playable field.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// TractorConfig contains all configuration for the tractor game.
type TractorConfig struct {
	Field    FieldConfig    `yaml:"field"`
	Movement MovementConfig `yaml:"movement"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	PowerUps PowerUpConfig  `yaml:"powerups"`
	Cycle    CycleConfig    `yaml:"cycle"`
}

// FieldConfig defines field dimensions and placement parameters.
type FieldConfig struct {
	GridUnit         int         `yaml:"grid_unit"`       // Size of one tile in viewport units
	ViewportWidth    int         `yaml:"viewport_width"`  // Viewport width in viewport units
	ViewportHeight   int         `yaml:"viewport_height"` // Viewport height in viewport units
	Rows             int         `yaml:"rows"`            // Explicit row count, 0 = derive from viewport
	Cols             int         `yaml:"cols"`            // Explicit column count, 0 = derive from viewport
	Obstacles        int         `yaml:"obstacles"`
	PowerUps         int         `yaml:"powerups"`
	PlacementRetries int         `yaml:"placement_retries"` // Attempts per placed item
	StartZone        int         `yaml:"start_zone"`        // Side of the protected square at spawn
	Weights          TileWeights `yaml:"weights"`
}

// TileWeights are relative weights for drawing interior tile categories.
type TileWeights struct {
	Unplowed int `yaml:"unplowed"`
	Mud      int `yaml:"mud"`
	Hard     int `yaml:"hard"`
}

// Total returns the sum of all weights.
func (w TileWeights) Total() int {
	return w.Unplowed + w.Mud + w.Hard
}

// MovementConfig defines tractor movement timing.
type MovementConfig struct {
	BaseIntervalMs int     `yaml:"base_interval_ms"`
	MudModifier    float64 `yaml:"mud_modifier"`
	RainModifier   float64 `yaml:"rain_modifier"`
	BoostModifier  float64 `yaml:"boost_modifier"`
	TrackLength    int     `yaml:"track_length"`
}

// BaseInterval returns the base move interval as a duration.
func (m MovementConfig) BaseInterval() time.Duration {
	return time.Duration(m.BaseIntervalMs) * time.Millisecond
}

// ScoringConfig defines points awarded per tile and end-of-game bonuses.
type ScoringConfig struct {
	UnplowedPoints    int `yaml:"unplowed_points"`
	MudPoints         int `yaml:"mud_points"`
	HardPoints        int `yaml:"hard_points"`
	ReplowPoints      int `yaml:"replow_points"`
	SunnyBonus        int `yaml:"sunny_bonus"`
	DoubleMultiplier  int `yaml:"double_multiplier"`
	TimeBonusPoints   int `yaml:"time_bonus_points"`
	CompletePercent   int `yaml:"complete_percent"`
	EndBonusBase      int `yaml:"end_bonus_base"`
	EndBonusPerSecond int `yaml:"end_bonus_per_second"`
}

// PowerUpConfig defines timed effect durations.
type PowerUpConfig struct {
	SpeedBoostMs   int `yaml:"speed_boost_ms"`
	DoublePointsMs int `yaml:"double_points_ms"`
}

// CycleConfig defines weather and day/night timing.
type CycleConfig struct {
	FirstWeatherMs int `yaml:"first_weather_ms"`
	WeatherMinMs   int `yaml:"weather_min_ms"`
	WeatherMaxMs   int `yaml:"weather_max_ms"`
	DaySeconds     int `yaml:"day_seconds"`
	NightSeconds   int `yaml:"night_seconds"`
}

// Dimensions returns the field size in tiles.
// Explicit rows/cols win over the viewport-derived size.
func (f FieldConfig) Dimensions() (rows, cols int) {
	rows, cols = f.Rows, f.Cols
	if f.GridUnit > 0 {
		if rows == 0 {
			rows = f.ViewportHeight / f.GridUnit
		}
		if cols == 0 {
			cols = f.ViewportWidth / f.GridUnit
		}
	}
	return rows, cols
}

// Validate checks that the configuration describes a playable game.
// Placement feasibility is checked separately when the field is generated.
func (c TractorConfig) Validate() error {
	rows, cols := c.Field.Dimensions()
	switch {
	case rows < 3 || cols < 3:
		return fmt.Errorf("%w: field %dx%d has no interior", ErrInvalidConfig, rows, cols)
	case c.Field.StartZone < 1:
		return fmt.Errorf("%w: start_zone must be positive, got %d", ErrInvalidConfig, c.Field.StartZone)
	case rows-2 < c.Field.StartZone || cols-2 < c.Field.StartZone:
		return fmt.Errorf("%w: interior %dx%d smaller than start zone %d", ErrInvalidConfig, rows-2, cols-2, c.Field.StartZone)
	case c.Field.Obstacles < 0 || c.Field.PowerUps < 0:
		return fmt.Errorf("%w: obstacle and power-up counts must not be negative", ErrInvalidConfig)
	case c.Field.PlacementRetries < 1:
		return fmt.Errorf("%w: placement_retries must be positive", ErrInvalidConfig)
	case c.Field.Weights.Unplowed < 0 || c.Field.Weights.Mud < 0 || c.Field.Weights.Hard < 0:
		return fmt.Errorf("%w: tile weights must not be negative", ErrInvalidConfig)
	case c.Field.Weights.Total() == 0:
		return fmt.Errorf("%w: tile weights sum to zero", ErrInvalidConfig)
	case c.Movement.BaseIntervalMs <= 0:
		return fmt.Errorf("%w: base_interval_ms must be positive", ErrInvalidConfig)
	case c.Movement.MudModifier <= 0 || c.Movement.RainModifier <= 0 || c.Movement.BoostModifier <= 0:
		return fmt.Errorf("%w: movement modifiers must be positive", ErrInvalidConfig)
	case c.Movement.TrackLength < 0:
		return fmt.Errorf("%w: track_length must not be negative", ErrInvalidConfig)
	case c.Scoring.CompletePercent <= 0 || c.Scoring.CompletePercent > 100:
		return fmt.Errorf("%w: complete_percent must be in (0, 100], got %d", ErrInvalidConfig, c.Scoring.CompletePercent)
	case c.Cycle.WeatherMinMs <= 0 || c.Cycle.WeatherMinMs > c.Cycle.WeatherMaxMs:
		return fmt.Errorf("%w: weather interval [%d, %d] ms is empty", ErrInvalidConfig, c.Cycle.WeatherMinMs, c.Cycle.WeatherMaxMs)
	case c.Cycle.DaySeconds <= 0 || c.Cycle.NightSeconds <= 0:
		return fmt.Errorf("%w: day and night lengths must be positive", ErrInvalidConfig)
	}
	return nil
}
