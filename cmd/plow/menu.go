package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tractor-plow/internal/config"
	"github.com/vovakirdan/tractor-plow/internal/games/tractor"
	"github.com/vovakirdan/tractor-plow/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start menu with difficulty picker and high scores",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to change difficulty,
Enter to select. After a session you return to the menu.

Examples:
  plow menu
  plow menu --fps 20`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tractor config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, tractor.GameID, preset, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config
		preset = res.Difficulty

		switch res.Choice {
		case tui.MenuChoicePlay:
			if err := playRound(store, preset, cfg); err != nil {
				logger.Error("session failed", "error", err)
			}
			// Each session from the menu gets a new field unless --seed pins it.
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}

		case tui.MenuChoiceScores:
			goBack, err := tui.RunScoreboard(store, tractor.GameID, tractor.GameTitle, 10, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}
