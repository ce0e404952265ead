package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fire-drill/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fire drill SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own private game with a level select menu;
progression is never shared between connections. Completed levels go to
one leaderboard (--db) that every connection can view.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.firedrill/host_key

Examples:
  firedrill serve                           # Listen on :23234 with auto-generated key
  firedrill serve --ssh :2222               # Listen on port 2222
  firedrill serve --host-key ./my_host_key  # Use specific host key
  firedrill serve --db ./scores.db          # Keep the leaderboard in a file

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout.Minutes()), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()
	logger.SetPrefix("firedrill-ssh")

	deps, err := loadDeps(logger)
	if err != nil {
		fatalf("%v", err)
	}
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting fire drill SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.Serve(ctx); err != nil {
		fatalf("server: %v", err)
	}
}
