package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fire-drill/internal/game"
)

func TestScoreboardCardFromLeaderboard(t *testing.T) {
	deps := testDeps(t)
	session := deps.NewStore("alice", 42)
	for _, score := range []int{300, 500} {
		if _, err := deps.Scores.Save("alice", game.LevelScore{LevelID: 1, Score: score, FiresExtinguished: 2}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(session, deps.Scores, 120, 40)
	if m.summary != (levelSummary{runs: 2, best: 500, avg: 400, fires: 4}) {
		t.Errorf("summary = %+v", m.summary)
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES", "1. Home Evacuation", "alice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardEmptyAndLockedLevel(t *testing.T) {
	deps := testDeps(t)
	m := NewScoreboardModel(deps.NewStore("bob", 42), deps.Scores, 60, 30)
	if !m.stacked {
		t.Error("narrow scoreboard should stack the card")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.levelCursor != 1 {
		t.Fatalf("levelCursor = %d", m.levelCursor)
	}
	view := m.View()
	if !strings.Contains(view, "No scores yet.") {
		t.Errorf("expected empty message:\n%s", view)
	}
	if !strings.Contains(view, "locked") {
		t.Errorf("second level should show as locked:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if next.(ScoreboardModel).levelCursor != 0 {
		t.Error("shift+tab should go back to the first level")
	}
}
