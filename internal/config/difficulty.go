package config

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset is returned for difficulty names that are not recognized.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("%w: %q (want easy, normal or hard)", ErrUnknownPreset, name)
	}
}

// ApplyTractorPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded config untouched.
func ApplyTractorPreset(cfg *TractorConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Movement.BaseIntervalMs = cfg.Movement.BaseIntervalMs * 6 / 5
		cfg.Field.Obstacles = max(0, cfg.Field.Obstacles-2)
		cfg.PowerUps.SpeedBoostMs = cfg.PowerUps.SpeedBoostMs * 3 / 2
		cfg.PowerUps.DoublePointsMs = cfg.PowerUps.DoublePointsMs * 3 / 2
	case DifficultyHard:
		cfg.Movement.BaseIntervalMs = cfg.Movement.BaseIntervalMs * 4 / 5
		cfg.Field.Obstacles += 4
		cfg.Field.PowerUps = max(0, cfg.Field.PowerUps-2)
	}
}
