package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ski-arcade/internal/core"
)

// ansiPalette holds the terminal color for each core.Color, indexed by value.
var ansiPalette = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "130",
	core.ColorGold:          "220",
	core.ColorPurple:        "129",
}

var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiPalette))
	for i, code := range ansiPalette {
		s := lipgloss.NewStyle()
		if code != "" {
			s = s.Foreground(lipgloss.Color(code))
		}
		styles[i] = s
	}
	styles[core.ColorGold] = styles[core.ColorGold].Bold(true)
	return styles
}

func cellStyle(c core.Color) lipgloss.Style {
	if int(c) >= len(cellStyles) {
		return cellStyles[core.ColorDefault]
	}
	return cellStyles[c]
}

// Shared styles for the menu, shop and scoreboard screens.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// tableStyles is the bubbles table look used by the shop and scoreboard.
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as runs of same-colored cells, one escape sequence per run.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	run := make([]rune, 0, w)
	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = run[:0]
		color := core.ColorDefault
		for x := range w {
			cell := s.GetCell(x, y)
			if cell.Color != color && len(run) > 0 {
				sb.WriteString(cellStyle(color).Render(string(run)))
				run = run[:0]
			}
			color = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(cellStyle(color).Render(string(run)))
		}
	}
	return sb.String()
}
