package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fire-drill/internal/game"
	"github.com/vovakirdan/fire-drill/internal/i18n"
	"github.com/vovakirdan/fire-drill/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForCard = 90  // below this the level card goes above the table
	cardWidth       = 28
	maxScores       = 100 // Max scores to load
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(cardWidth).
			Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("202"))
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tableBoxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// levelSummary aggregates every recorded run of one level.
type levelSummary struct {
	runs  int
	best  int
	avg   float64
	fires int
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Back      key.Binding
	Quit      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
// Scores come from the shared SQLite leaderboard when there is one and from
// the session's own history otherwise.
type ScoreboardModel struct {
	levels      []game.LevelStatus
	levelCursor int
	session     *game.Store
	store       *storage.Store
	msgs        *i18n.Catalog
	scores      []storage.ScoreEntry
	summary     levelSummary
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	stacked     bool // level card above the table instead of beside it
}

// NewScoreboardModel creates a new leaderboard model.
func NewScoreboardModel(session *game.Store, store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		levels:  session.Levels(),
		session: session,
		store:   store,
		msgs:    session.Messages(),
		keys:    keys,
		help:    h,
		width:   width,
		height:  height,
		stacked: width < minWidthForCard,
	}

	m.table = m.createTable()
	if len(m.levels) > 0 {
		m.loadScores(m.levels[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Fires", Width: 6},
		{Title: "Tips", Width: 5},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("124")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads scores and the summary card for the given level.
func (m *ScoreboardModel) loadScores(levelID int) {
	m.scores = nil
	m.summary = levelSummary{}
	if m.store != nil {
		if scores, err := m.store.TopScores(levelID, maxScores); err == nil {
			m.scores = scores
		}
		if st, err := m.store.GetLevelStats(levelID); err == nil {
			m.summary = levelSummary{runs: st.Completions, best: st.HighScore, avg: st.AvgScore, fires: st.TotalFires}
		}
		m.updateTableRows()
		return
	}

	total := 0
	for _, rec := range m.session.GetHighScores(levelID) {
		m.scores = append(m.scores, storage.ScoreEntry{
			LevelID:           rec.LevelID,
			Player:            storage.DefaultPlayer,
			Score:             rec.Score,
			TimeRemaining:     rec.TimeRemaining,
			FiresExtinguished: rec.FiresExtinguished,
			ItemsCollected:    rec.ItemsCollected,
			TipsFound:         rec.TipsFound,
			CompletedAt:       rec.CompletedAt,
		})
		m.summary.runs++
		m.summary.best = max(m.summary.best, rec.Score)
		m.summary.fires += rec.FiresExtinguished
		total += rec.Score
	}
	if m.summary.runs > 0 {
		m.summary.avg = float64(total) / float64(m.summary.runs)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.FiresExtinguished),
			fmt.Sprintf("%d", s.TipsFound),
			s.CompletedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel), key.Matches(msg, m.keys.Right):
			if len(m.levels) > 0 {
				m.levelCursor = (m.levelCursor + 1) % len(m.levels)
				m.loadScores(m.levels[m.levelCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel), key.Matches(msg, m.keys.Left):
			if len(m.levels) > 0 {
				m.levelCursor--
				if m.levelCursor < 0 {
					m.levelCursor = len(m.levels) - 1
				}
				m.loadScores(m.levels[m.levelCursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.stacked = m.width < minWidthForCard
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText(strings.ToUpper(m.msgs.T("SCORES_TITLE")), m.width)))
	b.WriteString("\n\n")

	card := m.renderCard()
	scores := tableBoxStyle.Render(m.renderTableContent())
	if m.stacked {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, card, scores))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, card, "  ", scores))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// renderCard shows the selected level with its progress and aggregate stats.
func (m ScoreboardModel) renderCard() string {
	if len(m.levels) == 0 {
		return cardStyle.Render(m.msgs.T("SCORES_EMPTY"))
	}
	l := m.levels[m.levelCursor]

	status := ""
	switch {
	case !l.Unlocked:
		status = m.msgs.T("MENU_LOCKED")
	case l.Completed:
		status = m.msgs.T("MENU_COMPLETED")
	}

	lines := []string{
		cardTitleStyle.Render(fmt.Sprintf("< %d. %s >", l.ID, l.Name)),
		cardLabelStyle.Render(status),
		"",
		m.cardRow("SCORES_RUNS", fmt.Sprintf("%d", m.summary.runs)),
		m.cardRow("SCORES_BEST", fmt.Sprintf("%d", m.summary.best)),
		m.cardRow("SCORES_AVERAGE", fmt.Sprintf("%.0f", m.summary.avg)),
		m.cardRow("SCORES_FIRES", fmt.Sprintf("%d", m.summary.fires)),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m ScoreboardModel) cardRow(labelID, value string) string {
	label := m.msgs.T(labelID)
	gap := max(cardWidth-4-lipgloss.Width(label)-lipgloss.Width(value), 1)
	return cardLabelStyle.Render(label) + strings.Repeat(" ", gap) + value
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render(m.msgs.T("SCORES_EMPTY"))
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
