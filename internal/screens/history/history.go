package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/screen"
	"github.com/abhisek/mathjourney/internal/store"
	"github.com/abhisek/mathjourney/internal/ui/layout"
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// Source is the part of the journal the history screen reads.
type Source interface {
	QueryLessonEvents(ctx context.Context, opts store.QueryOpts) ([]store.LessonEvent, error)
	ActivityAccuracy(ctx context.Context) ([]store.ActivityStat, error)
}

type historyLoadedMsg struct {
	Events []store.LessonEvent
	Stats  []store.ActivityStat
	Err    error
}

var activityNames = map[string]string{
	"warmup": "Warm-up",
	"store":  "Apple store",
	"angle":  "House builder",
}

// HistoryScreen lists recent lesson sessions and per-activity accuracy.
type HistoryScreen struct {
	source   Source
	events   []store.LessonEvent
	stats    []store.ActivityStat
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{source: source}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		events, err := s.source.QueryLessonEvents(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := s.source.ActivityAccuracy(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}
		return historyLoadedMsg{Events: events, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim)
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return dim.Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return dim.Italic(true).Render("\n\n  No lessons yet. Start climbing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.stats) > 0 {
		var parts []string
		for _, st := range s.stats {
			name := activityNames[st.Activity]
			if name == "" {
				name = st.Activity
			}
			parts = append(parts, fmt.Sprintf("%s %.0f%%", name, st.Accuracy()*100))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(parts, "   "))))
		b.WriteString("\n\n")
	}

	// Keep the cursor row on screen.
	rows := max(height-4, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.events))

	for i := start; i < end; i++ {
		ev := s.events[i]
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %-18s %s",
			prefix, ev.Timestamp.Local().Format("Jan 02 15:04"), ev.Title, describe(ev))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func describe(ev store.LessonEvent) string {
	switch ev.Action {
	case store.ActionStart:
		return "started"
	case store.ActionComplete:
		return fmt.Sprintf("completed  +%d pts (total %d)", ev.Points, ev.TotalPoints)
	case store.ActionAbandon:
		return fmt.Sprintf("left early (%d pts dropped)", ev.Points)
	default:
		return ev.Action
	}
}
