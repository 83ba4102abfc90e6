package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/game"
	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/scoring"
	"github.com/abhisek/mathjourney/internal/screen"
	"github.com/abhisek/mathjourney/internal/ui/components"
	"github.com/abhisek/mathjourney/internal/ui/layout"
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// SummaryScreen shows the outcome of a finished lesson.
type SummaryScreen struct {
	completion game.Completion
	maxPoints  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. maxPoints is the lesson's perfect
// score, 0 when unknown.
func New(c game.Completion, maxPoints int) *SummaryScreen {
	return &SummaryScreen{completion: c, maxPoints: maxPoints}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Lesson Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to the mountain"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	c := s.completion
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title.Render(fmt.Sprintf("%s complete!", c.Title))))
	b.WriteString("\n\n")

	earned := fmt.Sprintf("★ %d points", c.Points)
	if s.maxPoints > 0 {
		earned = fmt.Sprintf("★ %d / %d points", c.Points, s.maxPoints)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(earned)))
	b.WriteString("\n\n")

	for _, row := range breakdown(c) {
		b.WriteString(center(theme.Body.Render(row)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if c.LeveledUp() {
		b.WriteString(center(theme.Banner.Render(fmt.Sprintf("▲ Level up! You reached level %d", c.LevelAfter))))
		b.WriteString("\n\n")
	}

	barWidth := min(width-8, 50)
	bar := components.NewProgressBar(
		fmt.Sprintf("Lv %d", c.LevelAfter),
		scoring.ProgressFractionFor(c.TotalPoints),
		true,
		barWidth,
	)
	b.WriteString(center(bar.View()))
	b.WriteString("\n")

	next := fmt.Sprintf("%d points to level %d · now at the %s",
		scoring.PointsToNextLevel(c.TotalPoints), c.LevelAfter+1, scoring.MilestoneFor(c.TotalPoints))
	b.WriteString(center(theme.Hint.Render(next)))

	return b.String()
}

// breakdown lists the points per activity that was part of the lesson.
func breakdown(c game.Completion) []string {
	var rows []string
	if c.WarmupPoints > 0 {
		rows = append(rows, fmt.Sprintf("Warm-up       %3d", c.WarmupPoints))
	}
	if c.StorePoints > 0 {
		rows = append(rows, fmt.Sprintf("Apple store   %3d", c.StorePoints))
	}
	if c.AnglePoints > 0 {
		rows = append(rows, fmt.Sprintf("House builder %3d", c.AnglePoints))
	}
	return rows
}
