package tractor

import (
	"strings"
	"testing"
)

func TestTilePoints(t *testing.T) {
	r := testRules()
	tests := []struct {
		prior  Tile
		sunny  bool
		double bool
		want   int
	}{
		{TileUnplowed, true, false, 12},
		{TileUnplowed, true, true, 24},
		{TileUnplowed, false, false, 10},
		{TileMud, true, false, 10},
		{TileMud, false, true, 16},
		{TileHard, true, false, 17},
		{TileHard, false, false, 15},
		{TilePlowed, true, false, -2},
		{TilePlowed, false, true, -4},
	}
	for _, tc := range tests {
		if got := r.TilePoints(tc.prior, tc.sunny, tc.double); got != tc.want {
			t.Errorf("TilePoints(%s, sunny=%v, double=%v) = %d, expected %d",
				tc.prior, tc.sunny, tc.double, got, tc.want)
		}
	}
}

func TestSpeedModifier(t *testing.T) {
	r := testRules()
	for _, tile := range []Tile{TileUnplowed, TileHard, TilePlowed} {
		if got := r.SpeedModifier(tile); got != 1.0 {
			t.Errorf("SpeedModifier(%s) = %v, expected 1.0", tile, got)
		}
	}
	if got := r.SpeedModifier(TileMud); got != 1.5 {
		t.Errorf("SpeedModifier(mud) = %v, expected 1.5", got)
	}
}

func TestApplyClampsAtZero(t *testing.T) {
	r := testRules()
	if got := r.Apply(1, -2); got != 0 {
		t.Errorf("Apply(1, -2) = %d, expected 0", got)
	}
	if got := r.Apply(10, -2); got != 8 {
		t.Errorf("Apply(10, -2) = %d, expected 8", got)
	}
}

func TestFinalScore(t *testing.T) {
	r := testRules()
	tests := []struct {
		score, elapsed, want int
	}{
		{100, 0, 1100},
		{100, 60, 980},
		{100, 500, 100},
		{100, 900, 100},
	}
	for _, tc := range tests {
		if got := r.FinalScore(tc.score, tc.elapsed); got != tc.want {
			t.Errorf("FinalScore(%d, %d) = %d, expected %d", tc.score, tc.elapsed, got, tc.want)
		}
	}
}

func TestProgressAndCompletion(t *testing.T) {
	// 20 playable cells: 18 plowed, tractor, one unplowed
	f := NewFieldFromRows([]string{
		strings.Repeat("#", 22),
		"#@." + strings.Repeat("=", 18) + "#",
		strings.Repeat("#", 22),
	})
	r := testRules()

	if got := ProgressPercent(f); got != 90 {
		t.Errorf("ProgressPercent() = %d, expected 90", got)
	}
	if got := Progress(f); got != 0.9 {
		t.Errorf("Progress() = %v, expected 0.9", got)
	}
	if r.Complete(f) {
		t.Error("90% should not complete the field")
	}

	f.SetTile(Pos{1, 1}, TilePlowed)
	if !r.Complete(f) {
		t.Error("95% should complete the field")
	}
}

func TestProgressIgnoresObstacles(t *testing.T) {
	f := NewFieldFromRows([]string{
		"######",
		"#@=OO#",
		"######",
	})
	if got := ProgressPercent(f); got != 50 {
		t.Errorf("ProgressPercent() = %d, expected 50", got)
	}
}
