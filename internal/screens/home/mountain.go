package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/scoring"
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// mountainRows is the trail from base (last row) to summit (first row).
const mountainRows = 6

// renderMountain draws the mountain with the climber placed by the
// fraction of the current level climbed.
func renderMountain(fraction float64, cw int) string {
	climberRow := mountainRows - 1 - int(fraction*float64(mountainRows-1)+0.5)
	climberRow = min(max(climberRow, 0), mountainRows-1)

	peak := lipgloss.NewStyle().Foreground(theme.Summit)
	rock := lipgloss.NewStyle().Foreground(theme.Rock)
	forest := lipgloss.NewStyle().Foreground(theme.Forest)
	climber := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var lines []string
	lines = append(lines, peak.Render("⚑"))
	for row := 0; row < mountainRows; row++ {
		inner := row*2 + 1
		style := rock
		switch {
		case row < 2:
			style = peak
		case row >= mountainRows-2:
			style = forest
		}
		fill := strings.Repeat("^", inner)
		if row == climberRow {
			mid := inner / 2
			line := style.Render("/"+fill[:mid]) + climber.Render("●") + style.Render(fill[mid+1:]+"\\")
			lines = append(lines, line)
			continue
		}
		lines = append(lines, style.Render("/"+fill+"\\"))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderStatsBar shows points, level and the distance to the next level.
func renderStatsBar(total, level, cw int, compact bool) string {
	points := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	lv := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			points.Render(fmt.Sprintf("★%d", total)),
			lv.Render(fmt.Sprintf("Lv%d", level)),
			dim.Render(fmt.Sprintf("+%d", scoring.PointsToNextLevel(total))),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			points.Render(fmt.Sprintf("★ %d POINTS", total)),
			lv.Render(fmt.Sprintf("▲ LEVEL %d", level)),
			dim.Render(fmt.Sprintf("%d to go · %s", scoring.PointsToNextLevel(total), scoring.MilestoneFor(total))),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderTitle returns the home title line.
func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render("▲ M A T H   J O U R N E Y ▲"))
}

// renderFrame wraps content in a double border centered in the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
