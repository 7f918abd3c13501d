package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tractor-plow/internal/config"
	"github.com/vovakirdan/tractor-plow/internal/core"
	"github.com/vovakirdan/tractor-plow/internal/games/tractor"
	"github.com/vovakirdan/tractor-plow/internal/platform/tui"
	"github.com/vovakirdan/tractor-plow/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Plow a field",
	Long: `Start a run on a freshly generated field.

Controls:
  Arrows/WASD  - Steer (reversing is not allowed)
  P/Esc        - Pause
  R            - Restart (after the run ends)
  ?            - More help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower tractor, fewer obstacles, longer power-ups
  normal - Values from the config file
  hard   - Faster tractor, more obstacles, fewer power-ups

Examples:
  plow play
  plow play --difficulty easy
  plow play --seed 42
  plow play --config ./my-tractor.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tractor config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return playRound(store, preset, runtimeConfig())
}

// loadGameConfig resolves the tractor config for one session.
func loadGameConfig(preset config.DifficultyPreset) (config.TractorConfig, error) {
	cfg, source, err := config.LoadTractor(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyTractorPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "source", source, "difficulty", preset)
	return cfg, nil
}

// playRound runs one TUI session and logs every run that ended in it.
func playRound(store *storage.Store, preset config.DifficultyPreset, rt core.RuntimeConfig) error {
	cfg, err := loadGameConfig(preset)
	if err != nil {
		return err
	}

	logger.Info("starting run", "seed", rt.Seed, "difficulty", preset)

	finished, err := tui.Run(tractor.New(cfg), store, rt)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	for _, run := range finished {
		sum := run.Summary
		logger.Info("run finished",
			"reason", sum.Reason,
			"final_score", sum.FinalScore,
			"score", sum.Score,
			"elapsed", fmt.Sprintf("%ds", sum.ElapsedSecs),
			"plowed", fmt.Sprintf("%d%%", sum.ProgressPct),
			"run_id", run.RunID,
		)
		if run.SaveErr != nil {
			logger.Warn("run not saved", "error", run.SaveErr)
		}
	}
	return nil
}
