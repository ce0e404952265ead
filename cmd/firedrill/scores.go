package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fire-drill/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the leaderboard",
	Long: `Display the top 10 scores for a level, or a summary of every level
when no level is given. The leaderboard lives in --db; the default
in-memory database is empty on every start, so point --db at a file to
keep scores around.

Examples:
  firedrill scores --db ./scores.db
  firedrill scores 2 --db ./scores.db
  firedrill scores 2 --db ./scores.db --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the given level")
}

func runScores(_ *cobra.Command, args []string) {
	catalog, err := loadCatalog()
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			store.Close()
			fatalf("--clear needs a level")
		}
		printSummary(store)
		return
	}

	levelID, convErr := strconv.Atoi(args[0])
	l, ok := catalog.Get(levelID)
	if convErr != nil || !ok {
		store.Close()
		fatalf("unknown level %q\nRun 'firedrill levels list' to see available levels.", args[0])
	}

	if flagClear {
		if err := store.ClearScores(levelID); err != nil {
			store.Close()
			fatalf("%v", err)
		}
		styleOK.Printf("Cleared scores for level %d.\n", levelID)
		return
	}

	scores, err := store.TopScores(levelID, 10)
	if err != nil {
		store.Close()
		fatalf("retrieving scores: %v", err)
	}

	styleHeader.Printf("High Scores - %d. %s\n", l.ID, l.Name)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'firedrill play %d' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-7s  %-5s  %-4s  %s\n", "Rank", "Player", "Score", "Fires", "Tips", "Date")
	fmt.Printf("  %-4s  %-12s  %-7s  %-5s  %-4s  %s\n", "----", "------", "-----", "-----", "----", "----")

	for i, entry := range scores {
		line := fmt.Sprintf("  %-4d  %-12s  %-7d  %-5d  %-4d  %s",
			i+1, entry.Player, entry.Score, entry.FiresExtinguished, entry.TipsFound,
			entry.CompletedAt.Local().Format("2006-01-02 15:04"))
		if i == 0 {
			styleOK.Println(line)
		} else {
			fmt.Println(line)
		}
	}

	if stats, err := store.GetLevelStats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Fires put out: %d\n",
			stats.Completions, stats.HighScore, stats.AvgScore, stats.TotalFires)
	}
}

func printSummary(store *storage.Store) {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		store.Close()
		fatalf("retrieving stats: %v", err)
	}

	styleHeader.Println("Leaderboard")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-5s  %-5s  %-6s  %-7s  %s\n", "Level", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-5s  %-5s  %-6s  %-7s  %s\n", "-----", "----", "----", "-------", "-----------")
	for _, id := range slices.Sorted(maps.Keys(stats)) {
		s := stats[id]
		fmt.Printf("  %-5d  %-5d  %-6d  %-7.0f  %s\n",
			s.LevelID, s.Completions, s.HighScore, s.AvgScore, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}
