package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fire-drill/internal/platform/tui"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level directly. Without an argument the first level
is played. Locked levels open up as you complete the ones before them;
after a level is cleared, Enter continues with the next one.

Controls:
  WASD/Arrows  - Move
  E/Space      - Pick up
  F            - Use extinguisher on the nearest fire
  X            - Close tip
  P/Esc        - Pause
  R            - Restart level
  B            - Back
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Half damage from fires and smoke
  normal - Default rules
  hard   - One and a half times the damage

Examples:
  firedrill play
  firedrill play 1 --difficulty easy
  firedrill play 3 --levels ./my-levels
  firedrill play --rules ./rules.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
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

	levelID := deps.Catalog.First().ID
	if len(args) == 1 {
		id, convErr := strconv.Atoi(args[0])
		if convErr != nil || !deps.Catalog.Has(id) {
			fatalf("unknown level %q\nRun 'firedrill levels list' to see available levels.", args[0])
		}
		levelID = id
	}

	cfg := runtimeConfig()
	store := deps.NewStore(storage.DefaultPlayer, cfg.Seed)
	if status, _ := store.LevelStatus(levelID); !status.Unlocked {
		fatalf("level %d is locked\nComplete the levels before it from 'firedrill menu'.", levelID)
	}

	logger.Info("level started", "level", levelID)
	if err := tui.RunPlay(store, levelID, cfg); err != nil {
		fatalf("running level: %v", err)
	}
}
