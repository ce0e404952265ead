package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/game"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenPlay
	screenScores
)

// SessionModel manages the full flow of one player: menu -> level -> menu,
// plus the leaderboard. It owns the player's game store, so progression
// survives between levels but never leaks to another session.
type SessionModel struct {
	deps       Deps
	store      *game.Store
	config     core.RuntimeConfig
	player     string
	screen     sessionScreen
	menu       MenuModel
	play       *PlayModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, player string) SessionModel {
	cfg = cfg.Resolved()
	store := deps.NewStore(player, cfg.Seed)
	return SessionModel{
		deps:   deps,
		store:  store,
		config: cfg,
		player: player,
		menu:   NewMenuModel(store, deps.Scores, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.deps.Scores, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != 0:
		play := NewPlayModel(m.store, m.menu.Selected(), m.config)
		m.play = &play
		m.screen = screenPlay
		m.deps.logger().Info("level started", "player", m.player, "level", m.menu.Selected())
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates when a level is in play.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if playModel, ok := newModel.(PlayModel); ok {
		m.play = &playModel
	}

	if m.play.BackToMenu() {
		m.toMenu()
		return m, m.menu.Init()
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates when the leaderboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsGoingBack() {
		m.toMenu()
		return m, m.menu.Init()
	}
	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m *SessionModel) toMenu() {
	m.play = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.deps.Scores, m.config.ScreenW, m.config.ScreenH)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Store returns the session's game store.
func (m SessionModel) Store() *game.Store {
	return m.store
}

// RunSession runs the menu, level and leaderboard flow in the local terminal.
func RunSession(deps Deps, cfg core.RuntimeConfig, player string) error {
	model := NewSessionModel(deps, cfg, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
