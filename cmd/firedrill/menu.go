package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fire-drill/internal/platform/tui"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a level select menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a level. Completing a
level unlocks the next one. After a level ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start level
  Tab          - Leaderboard
  Q            - Quit

Examples:
  firedrill menu
  firedrill menu --fps 30
  firedrill menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	deps, err := loadDeps(logger)
	if err != nil {
		fatalf("%v", err)
	}
	deps.Scores = openScores(logger)
	if deps.Scores != nil {
		defer deps.Scores.Close()
	}

	if err := tui.RunSession(deps, runtimeConfig(), storage.DefaultPlayer); err != nil {
		fatalf("%v", err)
	}
}
