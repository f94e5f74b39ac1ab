package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows every campaign level with its board size, colors, target score,
time limit and hint allowance, after the difficulty preset is applied.

Examples:
  puzzlebit levels
  puzzlebit levels --difficulty hard
  puzzlebit levels --config ./my-levels.yaml`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cat, err := match3.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-18s  %-5s  %-6s  %-6s  %-8s  %s\n", "#", "Name", "Board", "Colors", "Target", "Time", "Hints")
	fmt.Printf("  %-3s  %-18s  %-5s  %-6s  %-6s  %-8s  %s\n", "-", "----", "-----", "------", "------", "----", "-----")
	for _, lvl := range cat.All() {
		fmt.Printf("  %-3d  %-18s  %-5s  %-6d  %-6d  %-8s  %s\n",
			lvl.Number, lvl.Name, boardSize(lvl), lvl.PaletteSize, lvl.TargetScore,
			timeLimit(lvl), hintAllowance(lvl))
	}

	e := cat.Endless()
	fmt.Println()
	fmt.Printf("Endless: %s board, %d colors, no time limit.\n", boardSize(e), e.PaletteSize)
	fmt.Println()
	fmt.Println("Use 'puzzlebit play <number>' to start a level.")
}

func boardSize(lvl levels.Level) string {
	return fmt.Sprintf("%dx%d", lvl.GridSize, lvl.GridSize)
}

func timeLimit(lvl levels.Level) string {
	if !lvl.Timed() {
		return "none"
	}
	return levels.FormatTime(lvl.TimeLimit)
}

func hintAllowance(lvl levels.Level) string {
	if lvl.Hints < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", lvl.Hints)
}
