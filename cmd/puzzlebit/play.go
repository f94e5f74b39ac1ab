package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzlebit/internal/games/match3"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
	"github.com/vovakirdan/puzzlebit/internal/platform/tui"
	"github.com/vovakirdan/puzzlebit/internal/registry"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a campaign level, or endless mode with --endless.
Without a level number the profile's current level is played.
Locked levels cannot be started.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Select a tile, then an adjacent tile to swap
  Mouse click  - Select or swap the clicked tile
  H/?          - Show a hint
  N            - Next level (after clearing)
  R            - Restart level
  P            - Pause
  Esc          - Back (when paused or over)
  Q/Ctrl+C     - Quit

Examples:
  puzzlebit play
  puzzlebit play 3
  puzzlebit play --endless
  puzzlebit play 2 --seed 42 --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog := tuiLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	recorder := tui.NewRecorder(store, flagProfile, logger)

	gameID := match3.IDCampaign
	level := recorder.Progress().Current
	switch {
	case flagEndless:
		gameID = match3.IDEndless
		level = levels.EndlessLevel
	case len(args) == 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		level = n
	}

	if level != levels.EndlessLevel {
		cat := recorder.Catalog()
		progress := recorder.Progress()
		if err := progress.Select(cat, level); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'puzzlebit progress' to see unlocked levels.")
			os.Exit(1)
		}
		recorder.SaveProgress(progress)
	}

	game, err := registry.CreateAt(gameID, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("play", "game", gameID, "level", level, "profile", recorder.Profile())
	if _, err := tui.Run(game, recorder, runtimeConfig(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
