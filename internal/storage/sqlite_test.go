package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) Run {
	t.Helper()
	saved, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return saved
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAssignsIDs(t *testing.T) {
	store := openTestStore(t)

	saved := mustSave(t, store, Run{GameID: "tractor", FinalScore: 900, Score: 120, Reason: "field complete", Seed: 7})
	if saved.ID == 0 {
		t.Error("expected row ID to be set")
	}
	if _, err := uuid.Parse(saved.RunID); err != nil {
		t.Errorf("run ID %q is not a uuid: %v", saved.RunID, err)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected creation time to be set")
	}

	got, err := store.RunByID(saved.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.FinalScore != 900 || got.Score != 120 || got.Reason != "field complete" || got.Seed != 7 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("created_at = %v, expected %v", got.CreatedAt, saved.CreatedAt)
	}

	missing, err := store.RunByID("does-not-exist")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, Run{RunID: "fixed", GameID: "tractor", Reason: "boundary collision"})
	if _, err := store.SaveRun(Run{RunID: "fixed", GameID: "tractor", Reason: "boundary collision"}); err == nil {
		t.Error("expected error for duplicate run ID")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "tractor", FinalScore: 100, Reason: "boundary collision"})
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 500, Reason: "obstacle collision"})
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 300, Reason: "boundary collision"})
	mustSave(t, store, Run{GameID: "other", FinalScore: 9000, Reason: "field complete"})

	runs, err := store.TopRuns("tractor", "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].FinalScore != 500 || runs[1].FinalScore != 300 || runs[2].FinalScore != 100 {
		t.Errorf("runs not in expected order: %+v", runs)
	}

	limited, err := store.TopRuns("tractor", "", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(limited))
	}

	boundary, err := store.TopRuns("tractor", "boundary collision", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(boundary) != 2 || boundary[0].FinalScore != 300 {
		t.Errorf("reason filter returned %+v", boundary)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tractor")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected 0 for empty store, got %d", high)
	}

	mustSave(t, store, Run{GameID: "tractor", FinalScore: 150, Reason: "boundary collision"})
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 420, Reason: "field complete"})

	high, err = store.HighScore("tractor")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 420 {
		t.Errorf("expected high score 420, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("tractor")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() || len(empty.ByReason) != 0 {
		t.Errorf("unexpected stats for empty store: %+v", empty)
	}

	last := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 100, ElapsedSecs: 30, ProgressPct: 40, Reason: "boundary collision", CreatedAt: last.Add(-time.Hour)})
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 300, ElapsedSecs: 90, ProgressPct: 95, Reason: "field complete", CreatedAt: last})
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 200, ElapsedSecs: 60, ProgressPct: 70, Reason: "boundary collision", CreatedAt: last.Add(-2 * time.Hour)})

	stats, err := store.Stats("tractor")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 3 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("count/high/avg = %d/%d/%v", stats.RunsCount, stats.HighScore, stats.AvgScore)
	}
	if stats.BestProgress != 95 || stats.TotalSecs != 180 {
		t.Errorf("best progress/total secs = %d/%d", stats.BestProgress, stats.TotalSecs)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("last played = %v, expected %v", stats.LastPlayed, last)
	}
	if stats.ByReason["boundary collision"] != 2 || stats.ByReason["field complete"] != 1 {
		t.Errorf("reason counts = %v", stats.ByReason)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{GameID: "tractor", FinalScore: 100, Reason: "boundary collision"})
	mustSave(t, store, Run{GameID: "tractor", FinalScore: 200, Reason: "boundary collision"})
	mustSave(t, store, Run{GameID: "other", FinalScore: 500, Reason: "field complete"})

	n, err := store.ClearRuns("tractor")
	if err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared %d runs, expected 2", n)
	}

	runs, _ := store.TopRuns("tractor", "", 10)
	if len(runs) != 0 {
		t.Errorf("expected 0 runs after clear, got %d", len(runs))
	}
	others, _ := store.TopRuns("other", "", 10)
	if len(others) != 1 {
		t.Errorf("clearing one game should not affect others, got %d", len(others))
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saved := mustSave(t, store1, Run{GameID: "tractor", FinalScore: 999, Reason: "obstacle collision"})
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store2.Close()

	got, err := store2.RunByID(saved.RunID)
	if err != nil || got == nil {
		t.Fatalf("RunByID() after reopen = %v, %v", got, err)
	}
	if got.FinalScore != 999 {
		t.Errorf("expected persisted score 999, got %d", got.FinalScore)
	}
}
