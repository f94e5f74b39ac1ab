package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/puzzlebit/internal/platform/tui"
	"github.com/vovakirdan/puzzlebit/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start PuzzleBit with the interactive menu",
	Long: `Start in interactive menu mode.

Continue the campaign, pick any unlocked level, play endless mode or
browse the high scores. After a level you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  puzzlebit menu
  puzzlebit menu --profile alice
  puzzlebit menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := tuiLogger()
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	recorder := tui.NewRecorder(store, flagProfile, logger)

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(recorder, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, recorder.Catalog(), cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.CreateAt(menuResult.GameID, menuResult.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			return
		}

		logger.Info("play", "game", menuResult.GameID, "level", menuResult.Level, "profile", recorder.Profile())
		quit, err := tui.Run(game, recorder, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		if quit {
			return
		}
	}
}
