package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Runes the lobby draws on the matchfield.
var (
	playerFrames = []rune{'◐', '◓', '◑', '◒'}
	bombRune     = '●'
)

type runeClass int

const (
	classPlain runeClass = iota
	classBorder
	classPlayer
	classBomb
)

var classStyles = map[runeClass]lipgloss.Style{
	classPlain:  lipgloss.NewStyle(),
	classBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	classPlayer: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	classBomb:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

func classify(r rune) runeClass {
	switch {
	case r == bombRune:
		return classBomb
	case strings.ContainsRune(string(playerFrames), r):
		return classPlayer
	case strings.ContainsRune("┌┐└┘─│┼", r):
		return classBorder
	}
	return classPlain
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells of the same class to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := classify(s.Get(x, y))

			var run strings.Builder
			for x < s.Width() {
				r := s.Get(x, y)
				if classify(r) != start {
					break
				}
				run.WriteRune(r)
				x++
			}
			sb.WriteString(classStyles[start].Render(run.String()))
		}
	}
	return sb.String()
}
