// firedrill is a terminal fire-safety game: find the extinguishers, put out
// every fire, pick up the safety tips and reach the exit before time runs out.
//
// Usage:
//
//	firedrill play [level]      - Play a level directly
//	firedrill menu              - Level select menu with progression
//	firedrill levels list       - List the campaign
//	firedrill levels check      - Validate level files (--watch to re-check on save)
//	firedrill scores [level]    - Show the leaderboard
//	firedrill serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 20)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--db <path>           - Leaderboard database (default: in memory)
//	--rules <path>        - Custom rules YAML
//	--levels <dir>        - Load levels from a directory instead of the built-in campaign
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagRules      string
	flagLevels     string
	flagMessages   string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "firedrill",
	Short: "Fire Drill - a fire safety game for your terminal",
	Long: `Fire Drill is a top-down fire safety game played in the terminal.

Pick up extinguishers and masks, put out every fire, collect the safety
tips and reach the exit before the timer runs out. Standing near a fire
costs health and oxygen; the closer you are, the faster it goes.

Available commands:
  play     - Play a level directly
  menu     - Level select menu with progression
  levels   - List or validate levels
  scores   - View the leaderboard
  serve    - Start SSH server for remote play

Examples:
  firedrill menu
  firedrill play 2 --difficulty easy
  firedrill levels check --levels ./levels --watch
  firedrill serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.MemoryPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level YAML files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagMessages, "messages", "", "Path to a gettext .po file with message translations")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal UI never logs to stderr)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
