package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/fire-drill/internal/config"
	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/i18n"
	"github.com/vovakirdan/fire-drill/internal/level"
	"github.com/vovakirdan/fire-drill/internal/platform/tui"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

// newLogger builds the command logger. Terminal UI commands pass
// toStderr=false: without --log-file their logs are discarded.
func newLogger(toStderr bool) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w       io.Writer = io.Discard
		cleanup           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "firedrill",
		Level:           lvl,
	})
	return logger, cleanup, nil
}

// loadCatalog returns the --levels directory or the built-in campaign.
func loadCatalog() (*level.Catalog, error) {
	if flagLevels != "" {
		return level.LoadDir(flagLevels)
	}
	return level.Default()
}

// loadRules reads --rules and applies --difficulty.
func loadRules() (config.Rules, error) {
	rules, err := config.LoadRules(flagRules)
	if err != nil {
		return rules, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return rules, err
	}
	config.ApplyPreset(&rules, preset)
	return rules, nil
}

func loadMessages() (*i18n.Catalog, error) {
	if flagMessages == "" {
		return i18n.Default(), nil
	}
	return i18n.LoadFile(flagMessages)
}

// loadDeps assembles everything a session needs except the leaderboard.
func loadDeps(logger *log.Logger) (tui.Deps, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return tui.Deps{}, err
	}
	tips, err := level.DefaultTips()
	if err != nil {
		return tui.Deps{}, err
	}
	rules, err := loadRules()
	if err != nil {
		return tui.Deps{}, err
	}
	msgs, err := loadMessages()
	if err != nil {
		return tui.Deps{}, err
	}

	return tui.Deps{
		Catalog:  catalog,
		Tips:     tips,
		Rules:    rules,
		Messages: msgs,
		Logger:   logger,
	}, nil
}

// openScores opens --db. A leaderboard that cannot be opened is a warning,
// the game still works without it.
func openScores(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("leaderboard disabled", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg.Resolved()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
