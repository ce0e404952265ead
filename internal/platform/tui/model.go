package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/game"
)

// footerHeight is the vitals bar line plus the help line below the screen.
const footerHeight = 2

var (
	vitalsLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PlayModel is the Bubble Tea model for one level in play.
// The runner owns the simulation; the model only feeds it keys and ticks.
type PlayModel struct {
	runner     *game.Runner
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	health     progress.Model
	oxygen     progress.Model
	inputFrame core.InputFrame
	gameState  game.GameState
	quitting   bool
	backToMenu bool
}

// NewPlayModel creates a play model for store and starts levelID.
func NewPlayModel(store *game.Store, levelID int, cfg core.RuntimeConfig) PlayModel {
	cfg = cfg.Resolved()
	runner := game.NewRunner(store)
	runner.Reset(cfg)
	runner.Start(levelID)

	h := help.New()
	h.Width = cfg.ScreenW

	return PlayModel{
		runner:     runner,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 1)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		health:     progress.New(progress.WithGradient("#8B0000", "#FF4500"), progress.WithoutPercentage(), progress.WithWidth(20)),
		oxygen:     progress.New(progress.WithGradient("#005F87", "#00D7FF"), progress.WithoutPercentage(), progress.WithWidth(20)),
		inputFrame: core.NewInputFrame(),
		gameState:  runner.State(),
	}
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.runner.Close()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.runner.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Quit {
		m.runner.Close()
		m.backToMenu = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickInterval())
}

// saveScreenshot saves the current screen to a file.
func (m *PlayModel) saveScreenshot() {
	m.runner.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".firedrill", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("level%d_%s.txt", m.gameState.LevelID, timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.runner.Render(m.screen)
	p := m.runner.Store().Player()
	vitals := lipgloss.JoinHorizontal(lipgloss.Top,
		vitalsLabelStyle.Render(" HP "), m.health.ViewAs(p.Health/game.MaxHealth),
		vitalsLabelStyle.Render("  O2 "), m.oxygen.ViewAs(p.Oxygen/game.MaxOxygen),
	)
	return RenderScreen(m.screen) + "\n" + vitals + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Store returns the session store driven by this model.
func (m PlayModel) Store() *game.Store {
	return m.runner.Store()
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player left the level.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay plays levelID on store until the player leaves it.
func RunPlay(store *game.Store, levelID int, cfg core.RuntimeConfig) error {
	model := NewPlayModel(store, levelID, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
