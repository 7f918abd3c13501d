package core

import (
	"testing"
	"time"
)

func TestRectCentered(t *testing.T) {
	tests := []struct {
		name       string
		outer      Rect
		w, h       int
		wantX      int
		wantY      int
		wantRight  int
		wantBottom int
	}{
		{"even fit", Rect{W: 40, H: 20}, 10, 4, 15, 8, 25, 12},
		{"offset outer", Rect{X: 5, Y: 2, W: 20, H: 10}, 6, 2, 12, 6, 18, 8},
		{"larger than outer", Rect{W: 10, H: 4}, 14, 6, -2, -1, 12, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.outer.Centered(tc.w, tc.h)
			if r.X != tc.wantX || r.Y != tc.wantY {
				t.Errorf("origin = (%d, %d), expected (%d, %d)", r.X, r.Y, tc.wantX, tc.wantY)
			}
			if r.Right() != tc.wantRight || r.Bottom() != tc.wantBottom {
				t.Errorf("edges = (%d, %d), expected (%d, %d)", r.Right(), r.Bottom(), tc.wantRight, tc.wantBottom)
			}
		})
	}
}

func TestRuntimeConfigClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cfg := RuntimeConfig{Clock: func() time.Time { return fixed }}

	if !cfg.Now().Equal(fixed) {
		t.Errorf("Now() = %v, expected injected clock value %v", cfg.Now(), fixed)
	}

	cfg.Clock = nil
	if cfg.Now().IsZero() {
		t.Error("Now() without a clock should fall back to wall-clock time")
	}
}

func TestInputFrameDirectionsOrdered(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)

	if len(f.Directions) != 2 {
		t.Fatalf("expected 2 directions, got %d", len(f.Directions))
	}
	if f.Directions[0] != ActionUp || f.Directions[1] != ActionLeft {
		t.Errorf("directions out of order: %v", f.Directions)
	}
	if !f.Has(ActionPause) {
		t.Error("pause should be recorded")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionUp) || len(f.Directions) != 0 {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionUp) || len(clone.Directions) != 2 {
		t.Error("Clone should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionRight)
	if !f.Has(ActionRight) || len(f.Directions) != 1 {
		t.Error("Set on a zero frame should allocate")
	}
}
