package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
)

var flagScoresEndless bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores for a level",
	Long: `Display the top 10 results for a campaign level, or for endless mode
with --endless. Without a level number, level 1 is shown.

Examples:
  puzzlebit scores
  puzzlebit scores 4
  puzzlebit scores --endless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresEndless, "endless", false, "Show endless mode scores")
}

func runScores(_ *cobra.Command, args []string) {
	cat, err := match3.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	gameID := match3.IDCampaign
	level := 1
	switch {
	case flagScoresEndless:
		gameID = match3.IDEndless
		level = levels.EndlessLevel
	case len(args) == 1:
		level, err = strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
	}

	title := "Endless"
	if level != levels.EndlessLevel {
		lvl, getErr := cat.Get(level)
		if getErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", getErr)
			fmt.Fprintln(os.Stderr, "Run 'puzzlebit levels' to see available levels.")
			os.Exit(1)
		}
		title = fmt.Sprintf("Level %d: %s", lvl.Number, lvl.Name)
	}

	store := mustOpenStore()
	defer store.Close()

	scores, err := store.TopScores(gameID, level, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		if level == levels.EndlessLevel {
			fmt.Println("Play 'puzzlebit play --endless' to set the first high score!")
		} else {
			fmt.Printf("Play 'puzzlebit play %d' to set the first high score!\n", level)
		}
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-5s  %s\n", "Rank", "Score", "Moves", "Time", "Stars", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-5s  %s\n", "----", "-----", "-----", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-5d  %s\n",
			i+1, entry.Score, entry.Moves, levels.FormatTime(entry.Elapsed),
			entry.Stars, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(gameID, level); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}
