package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/fire-drill/internal/core"
	"github.com/vovakirdan/fire-drill/internal/level"
)

const hudHeight = 2

// viewport maps world units to screen cells. Terminal cells are about twice
// as tall as they are wide, so a unit gets up to two columns and one row.
type viewport struct {
	ox, oy int
	sx, sy float64
	w, h   int // map interior in cells
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	availW := dst.Width() - 2
	availH := dst.Height() - hudHeight - 3 // frame plus message line
	sx := min(2.0, float64(availW)/worldW)
	sy := min(1.0, float64(availH)/worldH)
	v := viewport{sx: max(sx, 0.1), sy: max(sy, 0.1)}
	v.w = int(worldW*v.sx) + 1
	v.h = int(worldH*v.sy) + 1
	v.ox = max((dst.Width()-v.w-2)/2, 0) + 1
	v.oy = hudHeight + 1
	return v
}

func (v viewport) cell(p core.Vec) (int, int) {
	return v.ox + int(p.X*v.sx), v.oy + int(p.Y*v.sy)
}

// Render draws the map, entities, HUD and notices.
func (r *Runner) Render(dst *core.Screen) {
	dst.Clear()
	s := r.store
	if s.levelID == 0 || s.phase == PhaseMenu {
		dst.DrawTextCentered(dst.Height()/2, s.msgs.T("MENU_TITLE"), core.ColorBrightRed)
		return
	}

	r.renderHUD(dst)
	v := newViewport(dst, s.tmpl.Width, s.tmpl.Height)
	dst.DrawBox(v.ox-1, v.oy-1, v.w+2, v.h+2, core.ColorGray)
	r.renderMap(dst, v)

	if n := s.Notice(NoticeMessage); n.Visible {
		dst.DrawTextCentered(dst.Height()-1, n.Text, core.ColorBrightYellow)
	}

	switch s.phase {
	case PhasePaused:
		renderOverlay(dst, core.ColorBrightWhite, s.msgs.T("PAUSED"), "", s.msgs.T("PAUSED_HINT"))
	case PhaseGameOver:
		renderOverlay(dst, core.ColorBrightRed, s.msgs.T("GAME_OVER"),
			fmt.Sprintf("%s: %d", s.msgs.T("HUD_SCORE"), s.score), "", s.msgs.T("GAME_OVER_HINT"))
	case PhaseLevelComplete:
		b := s.lastBonus
		renderOverlay(dst, core.ColorBrightGreen, s.msgs.T("LEVEL_COMPLETE"),
			fmt.Sprintf("%s: %d", s.msgs.T("HUD_SCORE"), s.score),
			fmt.Sprintf("%s: +%d   %s: +%d", s.msgs.T("STAT_TIME_BONUS"), b.Time, s.msgs.T("STAT_HEALTH_BONUS"), b.Health),
			fmt.Sprintf("%s: %d", s.msgs.T("STAT_FIRES"), s.firesExtinguished),
			fmt.Sprintf("%s: %d", s.msgs.T("STAT_ITEMS"), s.itemsCollected),
			fmt.Sprintf("%s: %d/%d", s.msgs.T("STAT_TIPS"), s.tipsCollected.Size(), s.tmpl.CountTips()),
			"", s.msgs.T("LEVEL_COMPLETE_HINT"))
	case PhasePlaying:
		if n := s.Notice(NoticeTip); n.Visible {
			r.renderTip(dst, n.TipID)
		}
	}
}

func (r *Runner) renderHUD(dst *core.Screen) {
	s := r.store
	p := s.player
	mins, secs := s.timeRemaining/60, s.timeRemaining%60

	line := fmt.Sprintf(" %s   %s %d:%02d   %s %d",
		s.msgs.T("HUD_LEVEL", s.levelID, s.tmpl.Name),
		s.msgs.T("HUD_TIME"), mins, secs,
		s.msgs.T("HUD_SCORE"), s.score)
	timeColor := core.ColorBrightWhite
	if s.timeRemaining <= 30 {
		timeColor = core.ColorBrightRed
	}
	dst.DrawText(0, 0, line, timeColor)

	x := 1
	x = drawGauge(dst, x, 1, s.msgs.T("HUD_HEALTH"), p.Health/MaxHealth, core.ColorRed)
	x = drawGauge(dst, x, 1, s.msgs.T("HUD_OXYGEN"), p.Oxygen/MaxOxygen, core.ColorCyan)
	rest := fmt.Sprintf("%s %d  %s %d  %s %d",
		s.msgs.T("HUD_EXTINGUISHERS"), p.Inventory.Extinguishers,
		s.msgs.T("HUD_MASKS"), p.Inventory.Masks,
		s.msgs.T("HUD_FIRES"), s.ActiveHazards())
	dst.DrawText(x, 1, rest, core.ColorWhite)
}

// drawGauge draws "Label [#####     ]" and returns the next free column.
func drawGauge(dst *core.Screen, x, y int, label string, frac float64, c core.Color) int {
	const width = 10
	filled := int(core.ClampF(frac, 0, 1)*width + 0.5)
	dst.DrawText(x, y, label+" [", core.ColorWhite)
	x += len([]rune(label)) + 2
	dst.DrawText(x, y, strings.Repeat("█", filled), c)
	dst.DrawText(x+filled, y, strings.Repeat("·", width-filled), core.ColorDarkGray)
	x += width
	dst.DrawText(x, y, "]", core.ColorWhite)
	return x + 3
}

func (r *Runner) renderMap(dst *core.Screen, v viewport) {
	s := r.store
	for _, o := range s.tmpl.Obstacles {
		x0, y0 := v.cell(core.V(o.X, o.Y))
		x1, y1 := v.cell(core.V(o.Right(), o.Bottom()))
		dst.FillRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1), '█', core.ColorGray)
	}

	ex, ey := v.cell(s.tmpl.Exit)
	exitColor := core.ColorBrightGreen
	if s.ActiveHazards() > 0 {
		exitColor = core.ColorDarkGray
	}
	dst.SetColor(ex, ey, 'X', exitColor)

	for _, c := range s.collectibles {
		if c.Collected || c.Type == level.ExitItem {
			continue
		}
		x, y := v.cell(c.Pos)
		switch c.Type {
		case level.Extinguisher:
			dst.SetColor(x, y, 'E', core.ColorBrightRed)
		case level.Mask:
			dst.SetColor(x, y, 'M', core.ColorCyan)
		case level.TipItem:
			dst.SetColor(x, y, '?', core.ColorBrightYellow)
		}
	}

	for _, h := range s.hazards {
		x, y := v.cell(h.Pos)
		switch {
		case h.Extinguished:
			dst.SetColor(x, y, '.', core.ColorDarkGray)
		case h.Size >= 1.5:
			dst.SetColor(x, y, 'W', core.ColorRed)
		default:
			dst.SetColor(x, y, '^', core.ColorOrange)
		}
	}

	px, py := v.cell(s.player.Pos)
	playerColor := core.ColorBrightWhite
	switch EvaluateVitals(s.player.Pos, s.hazards, 0, s.rules).Nearest {
	case ZoneCritical:
		playerColor = core.ColorBrightRed
	case ZoneDanger:
		playerColor = core.ColorOrange
	case ZoneWarning:
		playerColor = core.ColorYellow
	}
	dst.SetColor(px, py, '@', playerColor)
}

func (r *Runner) renderTip(dst *core.Screen, tipID int) {
	s := r.store
	tip, ok := s.tips.Get(tipID)
	if !ok {
		return
	}
	width := min(dst.Width()-4, 56)
	lines := []string{s.msgs.T("TIP_HEADER") + ": " + tip.Title, ""}
	lines = append(lines, wrap(tip.Content, width-4)...)
	lines = append(lines, "", s.msgs.T("TIP_DISMISS"))
	renderOverlay(dst, core.ColorBrightYellow, lines...)
}

// renderOverlay draws a framed box with centered lines.
func renderOverlay(dst *core.Screen, c core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := min(maxLen+4, dst.Width())
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+1+i, l, c)
	}
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(text) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(w)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
