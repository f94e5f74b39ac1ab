package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/platform/tui"
)

var flagResetProgress bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show campaign progress",
	Long: `Show which levels the profile has unlocked and completed, with the
best star rating per level. --reset starts the profile over at level 1;
recorded scores are kept.

Examples:
  puzzlebit progress
  puzzlebit progress --profile alice
  puzzlebit progress --reset`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagResetProgress, "reset", false, "Reset the profile's progress")
}

func runProgress(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagResetProgress {
		if err := store.DeleteProgress(flagProfile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for %q reset.\n", flagProfile)
		return
	}

	recorder := tui.NewRecorder(store, flagProfile, nil)
	cat := recorder.Catalog()
	progress := recorder.Progress()
	stars := recorder.BestStars()
	sum := progress.Summary(cat)

	fmt.Printf("Profile: %s\n", recorder.Profile())
	fmt.Printf("Completed %d of %d levels (%d%%)\n", sum.Completed, sum.Total, sum.Percentage)
	fmt.Println()

	fmt.Printf("  %-3s  %-18s  %-9s  %s\n", "#", "Name", "Status", "Stars")
	fmt.Printf("  %-3s  %-18s  %-9s  %s\n", "-", "----", "------", "-----")
	for _, lvl := range cat.All() {
		status := "locked"
		switch {
		case progress.IsCompleted(lvl.Number):
			status = "completed"
		case progress.IsUnlocked(lvl.Number):
			status = "open"
		}
		marker := " "
		if lvl.Number == progress.Current {
			marker = ">"
		}
		fmt.Printf("%s %-3d  %-18s  %-9s  %d\n", marker, lvl.Number, lvl.Name, status, stars[lvl.Number])
	}

	if st, err := store.GetGameStats(match3.IDCampaign); err == nil && st.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Levels played: %d  Best: %d  Average: %.0f  Total moves: %d\n",
			st.GamesCount, st.HighScore, st.AvgScore, st.TotalMoves)
		fmt.Printf("Last played: %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
