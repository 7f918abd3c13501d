package config

import (
	_ "embed"
)

//go:embed defaults/tractor.yaml
var defaultTractorYAML []byte

// DefaultTractorConfig returns the default tractor game configuration.
func DefaultTractorConfig() TractorConfig {
	return TractorConfig{
		Field: FieldConfig{
			GridUnit:         40,
			ViewportWidth:    800,
			ViewportHeight:   600,
			Obstacles:        8,
			PowerUps:         5,
			PlacementRetries: 1000,
			StartZone:        3,
			Weights: TileWeights{
				Unplowed: 70,
				Mud:      15,
				Hard:     15,
			},
		},
		Movement: MovementConfig{
			BaseIntervalMs: 300,
			MudModifier:    1.5,
			RainModifier:   1.3,
			BoostModifier:  0.6,
			TrackLength:    50,
		},
		Scoring: ScoringConfig{
			UnplowedPoints:    10,
			MudPoints:         8,
			HardPoints:        15,
			ReplowPoints:      -2,
			SunnyBonus:        2,
			DoubleMultiplier:  2,
			TimeBonusPoints:   50,
			CompletePercent:   95,
			EndBonusBase:      1000,
			EndBonusPerSecond: 2,
		},
		PowerUps: PowerUpConfig{
			SpeedBoostMs:   8000,
			DoublePointsMs: 10000,
		},
		Cycle: CycleConfig{
			FirstWeatherMs: 15000,
			WeatherMinMs:   10000,
			WeatherMaxMs:   25000,
			DaySeconds:     30,
			NightSeconds:   20,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTractorYAML
}
