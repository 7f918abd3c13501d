package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsMatchEmbeddedYAML(t *testing.T) {
	embedded, err := parseTractor(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if embedded != DefaultTractorConfig() {
		t.Errorf("embedded YAML differs from DefaultTractorConfig():\n%+v\n%+v", embedded, DefaultTractorConfig())
	}
}

func TestDefaultDimensions(t *testing.T) {
	rows, cols := DefaultTractorConfig().Field.Dimensions()
	if rows != 15 || cols != 20 {
		t.Errorf("Dimensions() = %dx%d, expected 15x20", rows, cols)
	}

	f := DefaultTractorConfig().Field
	f.Rows = 8
	rows, cols = f.Dimensions()
	if rows != 8 || cols != 20 {
		t.Errorf("explicit rows should win: got %dx%d", rows, cols)
	}
}

func TestLoadTractorCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tractor.yaml")
	data := []byte("field:\n  obstacles: 3\nmovement:\n  base_interval_ms: 150\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadTractor(path)
	if err != nil {
		t.Fatalf("LoadTractor() failed: %v", err)
	}
	if source != SourceCustom {
		t.Errorf("source = %q, expected %q", source, SourceCustom)
	}
	if cfg.Field.Obstacles != 3 {
		t.Errorf("obstacles = %d, expected 3", cfg.Field.Obstacles)
	}
	if cfg.Movement.BaseIntervalMs != 150 {
		t.Errorf("base interval = %d, expected 150", cfg.Movement.BaseIntervalMs)
	}
	// Untouched keys keep defaults
	if cfg.Field.PowerUps != 5 || cfg.Scoring.HardPoints != 15 {
		t.Errorf("missing keys should keep defaults, got powerups=%d hard=%d", cfg.Field.PowerUps, cfg.Scoring.HardPoints)
	}
}

func TestLoadTractorCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := LoadTractor(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("field: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadTractor(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("field:\n  rows: 2\n  cols: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err := LoadTractor(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TractorConfig)
		valid  bool
	}{
		{"defaults", func(*TractorConfig) {}, true},
		{"no interior", func(c *TractorConfig) { c.Field.Rows, c.Field.Cols = 2, 10 }, false},
		{"interior smaller than start zone", func(c *TractorConfig) { c.Field.Rows, c.Field.Cols = 4, 10 }, false},
		{"negative obstacles", func(c *TractorConfig) { c.Field.Obstacles = -1 }, false},
		{"zero retries", func(c *TractorConfig) { c.Field.PlacementRetries = 0 }, false},
		{"zero weights", func(c *TractorConfig) { c.Field.Weights = TileWeights{} }, false},
		{"negative weight", func(c *TractorConfig) { c.Field.Weights.Mud = -5 }, false},
		{"zero base interval", func(c *TractorConfig) { c.Movement.BaseIntervalMs = 0 }, false},
		{"zero boost modifier", func(c *TractorConfig) { c.Movement.BoostModifier = 0 }, false},
		{"threshold above 100", func(c *TractorConfig) { c.Scoring.CompletePercent = 101 }, false},
		{"inverted weather window", func(c *TractorConfig) { c.Cycle.WeatherMinMs = 30000 }, false},
		{"zero night", func(c *TractorConfig) { c.Cycle.NightSeconds = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTractorConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v; expected normal", p, err)
	}
	if _, err := ParsePreset("fixed"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}

	normal := DefaultTractorConfig()
	ApplyTractorPreset(&normal, DifficultyNormal)
	if normal != DefaultTractorConfig() {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultTractorConfig()
	ApplyTractorPreset(&easy, DifficultyEasy)
	if easy.Movement.BaseIntervalMs != 360 || easy.Field.Obstacles != 6 {
		t.Errorf("easy preset: interval=%d obstacles=%d", easy.Movement.BaseIntervalMs, easy.Field.Obstacles)
	}

	hard := DefaultTractorConfig()
	ApplyTractorPreset(&hard, DifficultyHard)
	if hard.Movement.BaseIntervalMs != 240 || hard.Field.Obstacles != 12 || hard.Field.PowerUps != 3 {
		t.Errorf("hard preset: interval=%d obstacles=%d powerups=%d",
			hard.Movement.BaseIntervalMs, hard.Field.Obstacles, hard.Field.PowerUps)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset should stay valid: %v", err)
	}
}
