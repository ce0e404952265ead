package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the multi-player SSH front end.
type SSHServerConfig struct {
	Address string

	// HostKeyPath defaults to ~/.firedrill/host_key, generated on first use.
	HostKeyPath string

	// DBPath is the leaderboard shared by every connection.
	// storage.MemoryPath keeps it for the lifetime of the server only.
	DBPath string

	TickRate    int
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns the settings used by `firedrill serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.MemoryPath,
		TickRate:    core.DefaultConfig().TickRate,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one SessionModel per connection. Players never share a
// game store; the leaderboard database is the only shared state.
type SSHServer struct {
	config SSHServerConfig
	deps   Deps
	server *ssh.Server
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer opens the leaderboard at cfg.DBPath, replacing deps.Scores,
// and prepares the wish server. A leaderboard that cannot be opened only
// disables score mirroring.
func NewSSHServer(cfg SSHServerConfig, deps Deps) (*SSHServer, error) {
	if deps.Logger == nil {
		deps.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "firedrill-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	hostKey, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	deps.Scores = nil
	if scores, err := storage.Open(cfg.DBPath); err != nil {
		deps.Logger.Warn("leaderboard disabled", "db", cfg.DBPath, "error", err)
	} else {
		deps.Scores = scores
	}

	s := &SSHServer{config: cfg, deps: deps, logger: deps.Logger}
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			s.trackSession,
		),
	)
	if err != nil {
		s.closeScores()
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	return s, nil
}

func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".firedrill", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds a private game for one connection, sized to its PTY.
// activeterm has already rejected connections without one.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	return NewSessionModel(s.deps, cfg, sess.User()), []tea.ProgramOption{tea.WithAltScreen()}
}

// trackSession logs connection lifetimes under a per-connection id.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := uuid.NewString()
		started := time.Now()
		logger := s.logger.With("session", id, "user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started", "active", s.active.Add(1))
		defer func() {
			logger.Info("session ended", "active", s.active.Add(-1), "duration", time.Since(started).Round(time.Second))
		}()
		next(sess)
	}
}

// Serve accepts connections until ctx is cancelled, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeScores()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.active.Load())
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections, waits up to shutdownGrace for open
// sessions and closes the leaderboard.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeScores()
	return err
}

func (s *SSHServer) closeScores() {
	if s.deps.Scores != nil {
		s.deps.Scores.Close()
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// ActiveSessions reports the number of connected players.
func (s *SSHServer) ActiveSessions() int64 {
	return s.active.Load()
}
