package tractor

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tractor-plow/internal/config"
)

const step = 300 * time.Millisecond

func simFromRows(t *testing.T, cfg config.TractorConfig, layout []string) *Sim {
	t.Helper()
	f := NewFieldFromRows(layout)
	var spawn Pos
	found := false
	for r := 0; r < f.Rows(); r++ {
		for c := 0; c < f.Cols(); c++ {
			if f.TileAt(Pos{r, c}) == TileTractor {
				spawn, found = Pos{r, c}, true
			}
		}
	}
	if !found {
		t.Fatal("layout has no tractor")
	}
	return newSimWithField(cfg, rand.New(rand.NewSource(1)), f, spawn, t0)
}

func TestTickScoresUnplowedInSunshine(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"######",
		"#@...#",
		"######",
	})

	snap := s.Tick(t0)
	if !snap.Moved {
		t.Fatal("first tick should move")
	}
	if snap.State.Score != 12 {
		t.Errorf("score = %d, expected 12", snap.State.Score)
	}
	if snap.Tractor.Pos != (Pos{1, 2}) {
		t.Errorf("tractor at %v, expected (1,2)", snap.Tractor.Pos)
	}
}

func TestTickDoublePoints(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"######",
		"#@...#",
		"######",
	})
	s.state.DoublePoints = true
	s.state.DoublePointsEnd = t0.Add(10 * time.Second)

	if snap := s.Tick(t0); snap.State.Score != 24 {
		t.Errorf("score = %d, expected 24", snap.State.Score)
	}
}

func TestTickPowerUpPickup(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"#######",
		"#@D.B.#",
		"#######",
	})

	snap := s.Tick(t0)
	if snap.State.Score != 12 {
		t.Errorf("pickup move score = %d, expected 12 (not doubled)", snap.State.Score)
	}
	if !snap.DoublePoints || snap.DoublePointsLeft != 10*time.Second {
		t.Errorf("double points = %v (%v left), expected active for 10s", snap.DoublePoints, snap.DoublePointsLeft)
	}
	if len(snap.PowerUps) != 1 {
		t.Errorf("expected collected power-up removed, %d left", len(snap.PowerUps))
	}

	snap = s.Tick(t0.Add(step))
	if snap.State.Score != 36 {
		t.Errorf("doubled move score = %d, expected 36", snap.State.Score)
	}

	// Time bonus is added on top of the doubled tile points
	snap = s.Tick(t0.Add(2 * step))
	if snap.State.Score != 36+24+50 {
		t.Errorf("time bonus score = %d, expected %d", snap.State.Score, 36+24+50)
	}
}

func TestTickSpeedBoostShortensInterval(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"######",
		"#@S~.#",
		"######",
	})

	snap := s.Tick(t0)
	if snap.State.MoveInterval != 180*time.Millisecond {
		t.Errorf("boosted interval = %v, expected 180ms", snap.State.MoveInterval)
	}
	if !snap.SpeedBoost {
		t.Error("speed boost indicator should be set")
	}

	snap = s.Tick(t0.Add(180 * time.Millisecond))
	if !snap.Moved {
		t.Fatal("boosted tractor should move after 180ms")
	}
	if snap.State.MoveInterval != 270*time.Millisecond {
		t.Errorf("boosted mud interval = %v, expected 270ms", snap.State.MoveInterval)
	}
}

func TestTickGateLeavesStateUnchanged(t *testing.T) {
	cfg := config.DefaultTractorConfig()
	cfg.Movement.BaseIntervalMs = 60000
	s := simFromRows(t, cfg, []string{
		"######",
		"#@...#",
		"######",
	})

	first := s.Tick(t0)
	later := t0.Add(16 * time.Second)
	snap := s.Tick(later)

	if snap.Moved {
		t.Error("tractor moved before the interval elapsed")
	}
	if snap.State.Score != first.State.Score || snap.Tractor != first.Tractor {
		t.Errorf("state changed while gated: %+v -> %+v", first.Tractor, snap.Tractor)
	}
	if snap.Field.String() != first.Field.String() {
		t.Error("field changed while gated")
	}
	if snap.State.Weather != WeatherRainy {
		t.Error("weather should advance independently of movement")
	}
}

func TestTickObstacleCollision(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"######",
		"#@.O.#",
		"######",
	})
	s.Tick(t0)
	before := s.Snapshot(t0)

	snap := s.Tick(t0.Add(step))
	if !snap.Ended() || snap.State.Reason != EndObstacleCollision {
		t.Fatalf("status = %s (%s), expected ended by obstacle", snap.State.Status, snap.State.Reason)
	}
	if snap.State.Running {
		t.Error("running flag still set")
	}
	if snap.State.Score != before.State.Score || snap.Tractor.Pos != before.Tractor.Pos {
		t.Errorf("score/position changed on collision: %d %v -> %d %v",
			before.State.Score, before.Tractor.Pos, snap.State.Score, snap.Tractor.Pos)
	}

	// Ended is terminal
	after := s.Tick(t0.Add(10 * step))
	if after.Tick != snap.Tick || after.State.Score != snap.State.Score {
		t.Error("ticks after the end should be no-ops")
	}
	if s.Steer(HeadingSouth) {
		t.Error("steering after the end should be ignored")
	}
}

func TestTickBoundaryCollision(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"####",
		"#.@#",
		"####",
	})
	snap := s.Tick(t0.Add(3 * time.Second))
	if snap.State.Reason != EndBoundaryCollision {
		t.Fatalf("reason = %s, expected boundary collision", snap.State.Reason)
	}

	res, ok := s.Result()
	if !ok {
		t.Fatal("Result() should be available after the end")
	}
	if res.ElapsedSeconds != 3 || res.FinalScore != 1000-6 {
		t.Errorf("result = %+v, expected 3s and final score 994", res)
	}
}

func TestTickFieldComplete(t *testing.T) {
	// 40 playable cells, 37 plowed: one more reaches 95% with one cell left unplowed
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		strings.Repeat("#", 22),
		"#@." + strings.Repeat("=", 18) + "#",
		"#" + strings.Repeat("=", 19) + ".#",
		strings.Repeat("#", 22),
	})

	if snap := s.Snapshot(t0); snap.Ended() {
		t.Fatal("field should not start complete")
	}
	snap := s.Tick(t0)
	if snap.State.Reason != EndFieldComplete {
		t.Fatalf("reason = %s, expected field complete", snap.State.Reason)
	}
	if snap.Field.Count(TileUnplowed) != 1 {
		t.Errorf("expected one unplowed cell left, got %d", snap.Field.Count(TileUnplowed))
	}
	if snap.ProgressPercent != 95 {
		t.Errorf("progress = %d%%, expected 95%%", snap.ProgressPercent)
	}
}

func TestScoreNeverNegativeAndProgressMonotonic(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"###########",
		"#@.=======#",
		"###########",
	})

	lastProgress := 0
	scores := []int{12, 10, 8, 6, 4, 2, 0, 0}
	for i, want := range scores {
		snap := s.Tick(t0.Add(time.Duration(i) * step))
		if !snap.Moved {
			t.Fatalf("tick %d did not move", i)
		}
		if snap.State.Score != want {
			t.Errorf("tick %d: score = %d, expected %d", i, snap.State.Score, want)
		}
		if snap.State.Score < 0 {
			t.Fatalf("tick %d: negative score %d", i, snap.State.Score)
		}
		if snap.ProgressPercent < lastProgress {
			t.Errorf("tick %d: progress fell from %d to %d", i, lastProgress, snap.ProgressPercent)
		}
		lastProgress = snap.ProgressPercent
	}
}

func TestBufferedHeadingAppliesOnMove(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"#####",
		"#@..#",
		"#...#",
		"#####",
	})
	s.Tick(t0)
	if !s.Steer(HeadingSouth) {
		t.Fatal("south should be accepted while heading east")
	}
	// Gate not satisfied: buffered, not applied
	snap := s.Tick(t0.Add(step / 2))
	if snap.Tractor.Heading != HeadingEast || snap.Pending != HeadingSouth {
		t.Errorf("heading %s pending %s, expected east pending south", snap.Tractor.Heading, snap.Pending)
	}

	snap = s.Tick(t0.Add(step))
	if snap.Tractor.Heading != HeadingSouth || snap.Tractor.Pos != (Pos{2, 2}) {
		t.Errorf("tractor %+v, expected heading south at (2,2)", snap.Tractor)
	}
}

func TestRestartIsFullReset(t *testing.T) {
	s, err := NewSim(config.DefaultTractorConfig(), rand.New(rand.NewSource(11)), t0)
	if err != nil {
		t.Fatalf("NewSim() failed: %v", err)
	}
	s.Tick(t0)
	s.Steer(HeadingSouth)
	s.Tick(t0.Add(time.Second))
	s.Tick(t0.Add(2 * time.Second))

	t1 := t0.Add(time.Minute)
	if err := s.Restart(t1); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	snap := s.Snapshot(t1)

	if snap.State.Score != 0 || !snap.State.Running || snap.State.Status != StatusRunning {
		t.Errorf("state after restart = %+v", snap.State)
	}
	if snap.Tractor != (Tractor{Pos: Spawn, Heading: HeadingEast}) || snap.Pending != HeadingEast {
		t.Errorf("tractor after restart = %+v pending %s", snap.Tractor, snap.Pending)
	}
	if snap.ProgressPercent != 0 || snap.Field.Count(TilePlowed) != 0 {
		t.Errorf("progress after restart = %d%%", snap.ProgressPercent)
	}
	if len(snap.Track) != 0 || len(snap.PowerUps) != 5 || snap.Tick != 0 {
		t.Errorf("restart kept old collections: track=%d powerups=%d tick=%d", len(snap.Track), len(snap.PowerUps), snap.Tick)
	}
	if snap.ElapsedSeconds != 0 || snap.State.Weather != WeatherSunny || snap.State.TimeOfDay != Day {
		t.Errorf("timers not reset: elapsed=%d weather=%s time=%s", snap.ElapsedSeconds, snap.WeatherLabel, snap.TimeOfDayLabel)
	}
}

func TestShiftPreservesTimers(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"######",
		"#@D..#",
		"######",
	})
	s.Tick(t0)
	before := s.State()

	s.Shift(time.Minute)
	st := s.State()
	if st.DoublePointsEnd.Sub(before.DoublePointsEnd) != time.Minute ||
		st.NextWeatherAt.Sub(before.NextWeatherAt) != time.Minute ||
		st.StartedAt.Sub(before.StartedAt) != time.Minute ||
		st.LastMoveAt.Sub(before.LastMoveAt) != time.Minute {
		t.Errorf("timestamps not shifted: %+v", st)
	}
	if !st.SpeedBoostEnd.IsZero() {
		t.Error("unset speed boost end should stay zero")
	}

	snap := s.Snapshot(t0.Add(time.Minute + time.Second))
	if snap.ElapsedSeconds != 1 || snap.DoublePointsLeft != 9*time.Second {
		t.Errorf("elapsed=%d double left=%v after shift", snap.ElapsedSeconds, snap.DoublePointsLeft)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := simFromRows(t, config.DefaultTractorConfig(), []string{
		"######",
		"#@...#",
		"######",
	})
	snap := s.Tick(t0)
	snap.Field.SetTile(Pos{1, 4}, TilePlowed)
	if s.field.TileAt(Pos{1, 4}) != TileUnplowed {
		t.Error("snapshot field aliases the simulation field")
	}
}

func TestSimDeterministic(t *testing.T) {
	run := func() Snapshot {
		s, err := NewSim(config.DefaultTractorConfig(), rand.New(rand.NewSource(99)), t0)
		if err != nil {
			t.Fatal(err)
		}
		var snap Snapshot
		for i := 0; i < 200; i++ {
			if i == 3 {
				s.Steer(HeadingSouth)
			}
			snap = s.Tick(t0.Add(time.Duration(i) * 100 * time.Millisecond))
		}
		return snap
	}

	a, b := run(), run()
	if a.Field.String() != b.Field.String() || a.State != b.State || a.Tractor != b.Tractor {
		t.Errorf("same seed diverged:\n%+v\n%+v", a.State, b.State)
	}
}
