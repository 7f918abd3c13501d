package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tractor-plow/internal/games/tractor"
	"github.com/vovakirdan/tractor-plow/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(tractor.GameID)
	if err != nil {
		return err
	}

	fmt.Println("Statistics - " + tractor.GameTitle)
	fmt.Println()
	if st.RunsCount == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  Runs:          %d\n", st.RunsCount)
	fmt.Printf("  Best score:    %d\n", st.HighScore)
	fmt.Printf("  Average score: %.1f\n", st.AvgScore)
	fmt.Printf("  Best plowed:   %d%%\n", st.BestProgress)
	fmt.Printf("  Time played:   %ds\n", st.TotalSecs)
	fmt.Printf("  Last played:   %s\n", st.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Println("  Ended by:")

	reasons := make([]string, 0, len(st.ByReason))
	for r := range st.ByReason {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Printf("    %-18s %d\n", r, st.ByReason[r])
	}
	return nil
}
