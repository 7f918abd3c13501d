package tractor

import "github.com/vovakirdan/tractor-plow/internal/config"

// ScoreRules derives score deltas, speed modifiers and completion from
// tile state. It holds no mutable state.
type ScoreRules struct {
	scoring     config.ScoringConfig
	mudModifier float64
}

// NewScoreRules builds the rules from the scoring and movement settings.
func NewScoreRules(sc config.ScoringConfig, mc config.MovementConfig) ScoreRules {
	return ScoreRules{scoring: sc, mudModifier: mc.MudModifier}
}

// TilePoints returns the points earned for entering a tile whose category
// was prior. Sunny weather adds a bonus unless the tile was already plowed,
// then double points multiply the total.
func (r ScoreRules) TilePoints(prior Tile, sunny, double bool) int {
	var points int
	switch prior {
	case TileUnplowed:
		points = r.scoring.UnplowedPoints
	case TileMud:
		points = r.scoring.MudPoints
	case TileHard:
		points = r.scoring.HardPoints
	case TilePlowed:
		points = r.scoring.ReplowPoints
	}
	if sunny && prior != TilePlowed {
		points += r.scoring.SunnyBonus
	}
	if double {
		points *= r.scoring.DoubleMultiplier
	}
	return points
}

// SpeedModifier returns the move interval multiplier for driving through prior.
func (r ScoreRules) SpeedModifier(prior Tile) float64 {
	if prior == TileMud {
		return r.mudModifier
	}
	return 1.0
}

// Apply adds delta to score, never going below zero.
func (r ScoreRules) Apply(score, delta int) int {
	return max(0, score+delta)
}

// Complete reports whether the plowed share of the playable cells has
// reached the completion threshold.
func (r ScoreRules) Complete(f *Field) bool {
	playable := f.PlayableCount()
	if playable <= 0 {
		return false
	}
	return f.Count(TilePlowed)*100 >= r.scoring.CompletePercent*playable
}

// FinalScore adds the time bonus, which shrinks with every elapsed second.
func (r ScoreRules) FinalScore(score, elapsedSeconds int) int {
	return score + max(0, r.scoring.EndBonusBase-r.scoring.EndBonusPerSecond*elapsedSeconds)
}

// Progress returns the plowed fraction of the playable cells in [0, 1].
func Progress(f *Field) float64 {
	playable := f.PlayableCount()
	if playable <= 0 {
		return 0
	}
	return float64(f.Count(TilePlowed)) / float64(playable)
}

// ProgressPercent returns Progress as a whole percentage, rounded down.
func ProgressPercent(f *Field) int {
	playable := f.PlayableCount()
	if playable <= 0 {
		return 0
	}
	return f.Count(TilePlowed) * 100 / playable
}
