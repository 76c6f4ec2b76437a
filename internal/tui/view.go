package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/bubbletip/internal/bubble"
	"github.com/jmylchreest/bubbletip/internal/geometry"
)

var (
	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	anchorRune = '▒'
	tipRune    = '◆'
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "starting playground..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		canvasStyle.Render(m.renderCanvas()),
		statusStyle.Render(m.statusLine()),
		m.help.View(m.keys),
	)
}

func (m Model) statusLine() string {
	dir := "ltr"
	if m.win.TextDirection() == geometry.DirectionRTL {
		dir = "rtl"
	}
	line := fmt.Sprintf("state:%s  prefer:%s  final:%s  offset:%d  opacity:%.2f  modal:%s  anim:%s  dir:%s  constraint:%s",
		m.bub.VisibilityState(),
		m.bub.PreferredSide(),
		m.bub.FinalSide(),
		m.bub.TransitionOffset(),
		m.bub.Opacity(),
		onOff(m.bub.Modal()),
		onOff(m.win.AnimationsEnabled()),
		dir,
		m.bub.ConstraintMode(),
	)
	if m.status != "" {
		line += "  |  " + m.status
	}
	return line
}

// renderCanvas paints the host window one terminal cell per pixel: the
// anchor, the bubble body shaded by its current opacity, and the tail tip.
func (m Model) renderCanvas() string {
	win := m.win.Bounds()
	grid := make([][]rune, win.Height)
	for y := range grid {
		grid[y] = make([]rune, win.Width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	set := func(x, y int, r rune) {
		if y >= 0 && y < win.Height && x >= 0 && x < win.Width {
			grid[y][x] = r
		}
	}

	a := m.anchor.Bounds()
	for y := a.Y; y < a.Bottom(); y++ {
		for x := a.X; x < a.Right(); x++ {
			set(x, y, anchorRune)
		}
	}

	if m.overlay.Visible() && !m.bub.Suppressed() && m.bub.VisibilityState() != bubble.StateHidden {
		body := bodyRune(m.bub.Opacity())
		bounds := m.bub.Bounds()
		for y := bounds.Y; y < bounds.Bottom(); y++ {
			for x := bounds.X; x < bounds.Right(); x++ {
				set(x, y, body)
			}
		}
		if tail, ok := m.bub.CurrentTailGeometry(); ok {
			set(bounds.X+tail.Tip.X, bounds.Y+tail.Tip.Y, tipRune)
		}
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

func bodyRune(opacity float64) rune {
	switch {
	case opacity < 0.34:
		return '░'
	case opacity < 0.67:
		return '▒'
	default:
		return '█'
	}
}
