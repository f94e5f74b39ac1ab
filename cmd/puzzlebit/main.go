// puzzlebit is a match-3 tile puzzle for the terminal.
//
// Usage:
//
//	puzzlebit levels            - List campaign levels
//	puzzlebit play [level]      - Play a level (or --endless)
//	puzzlebit menu              - Start the interactive menu
//	puzzlebit scores [level]    - Show high scores for a level
//	puzzlebit progress          - Show campaign progress
//	puzzlebit inspect           - Print a generated board and its moves
//	puzzlebit serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.puzzlebit/scores.db)
//	--config <path>       - Custom match3.yaml
//	--difficulty <preset> - easy, normal or hard
//	--profile <name>      - Progress profile (default: local)
//	--log-file <path>     - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzlebit/internal/config"
	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "puzzlebit",
	Short: "PuzzleBit - match-3 puzzles in your terminal",
	Long: `PuzzleBit is a match-3 tile puzzle. Swap adjacent tiles to line up
three or more of the same color, chain cascades and reach each level's
target score before the clock runs out.

Available commands:
  levels    - Show the campaign levels
  play      - Play a level directly
  menu      - Interactive menu with level select and scores
  scores    - View high scores
  progress  - View or reset campaign progress
  inspect   - Print a generated board for a seed
  serve     - Start SSH server for remote play

Examples:
  puzzlebit menu
  puzzlebit play 3
  puzzlebit play --endless --difficulty hard
  puzzlebit inspect --level 2 --seed 42
  puzzlebit serve --ssh :2222`,
	PersistentPreRunE: applyGameFlags,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.puzzlebit/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGameFlags hands --config and --difficulty to the game before any
// command creates one.
func applyGameFlags(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	match3.SetConfigPath(flagConfig)
	match3.SetDifficultyPreset(preset)
	return nil
}
