package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fire-drill/internal/game"
	"github.com/vovakirdan/fire-drill/internal/i18n"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuLockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the level select menu.
// It reads progression from the session's game store.
type MenuModel struct {
	store          *game.Store
	scores         *storage.Store
	msgs           *i18n.Catalog
	levels         []game.LevelStatus
	cursor         int
	width          int
	height         int
	quitting       bool
	selected       int // level id, 0 until the player picks one
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *game.Store, scores *storage.Store, width, height int) MenuModel {
	m := MenuModel{
		store:  store,
		scores: scores,
		msgs:   store.Messages(),
		levels: store.Levels(),
		width:  width,
		height: height,
	}
	// Start on the first unlocked, not yet completed level.
	for i, l := range m.levels {
		if l.Unlocked && !l.Completed {
			m.cursor = i
			break
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.levels) > 0 && m.levels[m.cursor].Unlocked {
			m.selected = m.levels[m.cursor].ID
			return m, tea.Quit
		}

	case MenuActionScores:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(m.msgs.T("MENU_TITLE")), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.msgs.T("MENU_SUBTITLE"), m.width))
	b.WriteString("\n\n")

	for i, l := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%d. %s", cursor, l.ID, l.Name)

		style := lipgloss.NewStyle()
		switch {
		case !l.Unlocked:
			line += "  [" + m.msgs.T("MENU_LOCKED") + "]"
			style = menuLockedStyle
		case l.Completed:
			line += "  [" + m.msgs.T("MENU_COMPLETED") + "]"
			style = menuDoneStyle
		}
		if best := m.best(l.ID); best > 0 {
			line += fmt.Sprintf("  %s %d", m.msgs.T("HUD_SCORE"), best)
		}
		if i == m.cursor && l.Unlocked {
			style = menuSelectedStyle
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuFooterStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// best returns the best known score of a level: the shared leaderboard if
// there is one, otherwise this session's history.
func (m MenuModel) best(levelID int) int {
	if m.scores != nil {
		if high, err := m.scores.HighScore(levelID); err == nil {
			return high
		}
	}
	if scores := m.store.GetHighScores(levelID); len(scores) > 0 {
		return scores[0].Score
	}
	return 0
}

// Selected returns the chosen level id, or 0 if none was chosen.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the leaderboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
