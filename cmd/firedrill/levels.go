package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/level"
)

var (
	flagWatch bool

	styleHeader  = color.Style{color.OpBold}
	styleOK      = color.Style{color.FgGreen}
	styleWarning = color.Style{color.FgYellow}
	styleError   = color.Style{color.FgRed, color.OpBold}
	styleSubtle  = color.Style{color.FgGray}
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or validate levels",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels of the campaign",
	Long: `Shows every level of the campaign (or of --levels) with its size,
time limit, fires and collectibles.`,
	Run: runLevelsList,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate level files",
	Long: `Checks every level for authoring problems: entities outside the map,
duplicate ids, unknown tips, a start inside a wall, an exit that cannot be
reached and fires that cannot be put out from anywhere reachable.

With --watch the --levels directory is re-checked every time a level file
is saved.

Examples:
  firedrill levels check
  firedrill levels check --levels ./my-levels --watch`,
	Run: runLevelsCheck,
}

func init() {
	levelsCheckCmd.Flags().BoolVar(&flagWatch, "watch", false, "Re-check when a level file in --levels changes")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	catalog, err := loadCatalog()
	if err != nil {
		fatalf("%v", err)
	}

	styleHeader.Println("Levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range catalog.Levels() {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-7s  %-5s  %-5s  %-5s  %s\n", "ID", maxNameLen, "Name", "Size", "Time", "Fires", "Items", "Tips")
	fmt.Printf("  %-3s  %-*s  %-7s  %-5s  %-5s  %-5s  %s\n", "--", maxNameLen, "----", "----", "----", "-----", "-----", "----")

	for _, l := range catalog.Levels() {
		line := fmt.Sprintf("  %-3d  %-*s  %-7s  %-5s  %-5d  %-5d  %d",
			l.ID, maxNameLen, l.Name,
			fmt.Sprintf("%gx%g", l.Width, l.Height),
			fmt.Sprintf("%d:%02d", l.TimeLimit/60, l.TimeLimit%60),
			len(l.Hazards), len(l.Collectibles), l.CountTips())
		if l.Unlocked {
			fmt.Println(line)
		} else {
			styleSubtle.Println(line + "  (locked)")
		}
	}

	fmt.Println()
	fmt.Println("Run 'firedrill play <id>' to play an unlocked level.")
}

func checkOptions() level.CheckOptions {
	opts := level.DefaultCheckOptions()
	rules, err := config.LoadRules(flagRules)
	if err == nil {
		opts.CollisionRadius = rules.Movement.CollisionRadius
		opts.ExitRadius = rules.Movement.ExitRadius
		opts.InteractRadius = rules.Movement.InteractRadius
		opts.ExtinguishRange = rules.Hazards.ExtinguishRange
		opts.Step = rules.Movement.MoveStep
	}
	if tips, err := level.DefaultTips(); err == nil {
		opts.Tips = tips
	}
	return opts
}

// checkLevels loads and checks the catalog once. It reports whether the
// catalog is free of errors; warnings do not fail the check.
func checkLevels(opts level.CheckOptions) bool {
	catalog, err := loadCatalog()
	if err != nil {
		styleError.Printf("load failed: %v\n", err)
		return false
	}

	issues := level.CheckCatalog(catalog, opts)
	errs := 0
	for _, issue := range issues {
		if issue.Severity == level.SeverityError {
			errs++
			styleError.Println(issue.String())
		} else {
			styleWarning.Println(issue.String())
		}
	}

	if len(issues) == 0 {
		styleOK.Printf("%d levels ok\n", catalog.Len())
	} else {
		fmt.Printf("%d levels, %d errors, %d warnings\n", catalog.Len(), errs, len(issues)-errs)
	}
	return errs == 0
}

func runLevelsCheck(_ *cobra.Command, _ []string) {
	opts := checkOptions()
	ok := checkLevels(opts)

	if !flagWatch {
		if !ok {
			os.Exit(1)
		}
		return
	}
	if flagLevels == "" {
		fatalf("--watch needs --levels <dir>")
	}

	watcher, err := level.NewWatcher(flagLevels)
	if err != nil {
		fatalf("cannot watch %s: %v", flagLevels, err)
	}
	defer watcher.Close()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	styleSubtle.Printf("watching %s, press Ctrl+C to stop\n", flagLevels)
	for {
		select {
		case name, ok := <-watcher.Events:
			if !ok {
				return
			}
			fmt.Println()
			styleHeader.Printf("%s changed\n", filepath.Base(name))
			checkLevels(opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			styleError.Printf("watch error: %v\n", err)
		case <-done:
			return
		}
	}
}
