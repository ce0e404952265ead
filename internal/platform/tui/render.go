package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fire-drill/internal/core"
)

// colorStyles holds one lipgloss style per palette entry, indexed by color.
var colorStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, 0, len(core.Colors()))
	for _, c := range core.Colors() {
		st := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		if c == core.ColorBrightWhite {
			st = st.Bold(true)
		}
		styles = append(styles, st)
	}
	return styles
}()

// RenderScreen styles a screen buffer row by row, emitting one styled
// segment per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var out, run strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		current := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				out.WriteString(styleFor(current).Render(run.String()))
				run.Reset()
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		out.WriteString(styleFor(current).Render(run.String()))
		run.Reset()
	}
	return out.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(colorStyles) {
		return colorStyles[c]
	}
	return colorStyles[core.ColorDefault]
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
