package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tractor-plow/internal/games/tractor"
	"github.com/vovakirdan/tractor-plow/internal/platform/tui"
	"github.com/vovakirdan/tractor-plow/internal/storage"
)

var (
	flagLimit  int
	flagTUI    bool
	flagReason string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best finished runs, ranked by final score.

Examples:
  plow scores
  plow scores --limit 20
  plow scores --reason "field complete"
  plow scores --tui`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagReason, "reason", "", `Only runs that ended this way ("field complete", "obstacle collision", "boundary collision")`)
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagLimit <= 0 {
		return errors.New("--limit must be positive")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		n, err := store.ClearRuns(tractor.GameID)
		if err != nil {
			return err
		}
		logger.Info("runs cleared", "count", n)
		return nil
	}

	if flagTUI {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, tractor.GameID, tractor.GameTitle, flagLimit, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.TopRuns(tractor.GameID, flagReason, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - " + tractor.GameTitle)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'plow play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-18s  %-6s  %-6s  %s\n", "Rank", "Score", "Ended by", "Time", "Plowed", "Date")
	fmt.Printf("  %-4s  %-7s  %-18s  %-6s  %-6s  %s\n", "----", "-----", "--------", "----", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-18s  %-6s  %-6s  %s\n",
			i+1, r.FinalScore, r.Reason,
			fmt.Sprintf("%ds", r.ElapsedSecs),
			fmt.Sprintf("%d%%", r.ProgressPct),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(tractor.GameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
