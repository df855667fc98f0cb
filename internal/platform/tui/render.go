package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// ansiCodes maps core.Color to ANSI 256-color codes. ColorDefault keeps
// the terminal foreground.
var ansiCodes = map[core.Color]string{
	core.ColorGreen:        "2",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightCyan:   "14",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
	core.ColorDarkGray:     "238",
}

// colorStyles holds one lipgloss style per color, built once.
var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is split into runs of one color so a run costs a single style.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run []rune
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = run[:0]
		runColor := core.ColorDefault
		for x, w := 0, s.Width(); x < w; x++ {
			cell := s.GetCell(x, y)
			if len(run) > 0 && cell.Color != runColor {
				writeRun(&sb, run, runColor)
				run = run[:0]
			}
			runColor = cell.Color
			run = append(run, cell.Rune)
		}
		writeRun(&sb, run, runColor)
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, run []rune, c core.Color) {
	if len(run) == 0 {
		return
	}
	style, ok := colorStyles[c]
	if !ok {
		style = colorStyles[core.ColorDefault]
	}
	sb.WriteString(style.Render(string(run)))
}
