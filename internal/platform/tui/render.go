package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jetflap/internal/core"
)

// colorStyles maps the game palette to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorSky:     lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
	core.ColorWallCap: lipgloss.NewStyle().Foreground(lipgloss.Color("118")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	core.ColorFlame:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGround:  lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
	core.ColorLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorHurt:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text so it sits in the middle of a line of the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
