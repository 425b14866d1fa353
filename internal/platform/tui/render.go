package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/carpetrun/internal/core"
)

// scenePalette holds one style per color the carpet scene draws. The night
// skyline stays dim so the carpet and the weapons stand out.
var scenePalette = map[core.Color]lipgloss.Style{
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // skyline
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("178")), // domes
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("127")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
}

var (
	plainStyle = lipgloss.NewStyle()
	// The top row carries score and speed.
	hudRowStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func styleFor(c core.Color, row int) lipgloss.Style {
	st, ok := scenePalette[c]
	if !ok {
		st = plainStyle
	}
	if row == 0 {
		st = st.Inherit(hudRowStyle)
	}
	return st
}

// RenderScreen renders the scene with colors. Cells of one color on a row are
// styled as a single run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run = run[:0]
		cur := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != cur {
				sb.WriteString(styleFor(cur, y).Render(string(run)))
				run, cur = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(cur, y).Render(string(run)))
		}
	}
	return sb.String()
}
