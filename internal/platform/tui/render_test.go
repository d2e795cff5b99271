package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jetflap/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawTextColored(0, 0, "ab", core.ColorWall)
	scr.DrawTextColored(2, 0, "cd", core.ColorLabel)
	scr.DrawText(0, 1, "xyz")

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	for i, want := range []string{"abcd", "xyz"} {
		if !strings.Contains(stripANSI(lines[i]), want) {
			t.Errorf("Line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
	if w := lipgloss.Width(lines[0]); w != 10 {
		t.Errorf("Expected visible width 10, got %d", w)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("Overlong text should be unchanged, got %q", got)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
