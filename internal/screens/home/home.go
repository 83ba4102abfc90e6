package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/coach"
	"github.com/abhisek/mathjourney/internal/game"
	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/screen"
	"github.com/abhisek/mathjourney/internal/screens/history"
	"github.com/abhisek/mathjourney/internal/screens/placeholder"
	sessionscreen "github.com/abhisek/mathjourney/internal/screens/session"
	"github.com/abhisek/mathjourney/internal/ui/components"
	"github.com/abhisek/mathjourney/internal/ui/layout"
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// HomeScreen shows the mountain, the learner's stats and the lesson list.
type HomeScreen struct {
	ctrl    *game.Controller
	coach   *coach.Service
	history history.Source
	menu    components.Menu

	confirmReset bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.EscapeHandler = (*HomeScreen)(nil)

// resetMsg asks for confirmation before progress is reset.
type resetMsg struct{}

// New creates a new HomeScreen. coach and hist may be nil.
func New(ctrl *game.Controller, c *coach.Service, hist history.Source) *HomeScreen {
	h := &HomeScreen{ctrl: ctrl, coach: c, history: hist}
	h.menu = components.NewMenu(h.items())
	return h
}

// items builds the menu from the catalog as it stands now.
func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for _, l := range h.ctrl.Snapshot().Lessons {
		items = append(items, h.lessonItem(l))
	}
	if h.history != nil {
		hist := h.history
		items = append(items, components.MenuItem{Label: "📜 History", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(hist)} }
		}})
	}
	items = append(items, components.MenuItem{Label: "🔄 Reset Progress", Action: func() tea.Cmd {
		return func() tea.Msg { return resetMsg{} }
	}})
	items = append(items, components.MenuItem{Label: "🚪 Exit", Action: func() tea.Cmd {
		return tea.Quit
	}})
	return items
}

func (h *HomeScreen) lessonItem(l catalog.Lesson) components.MenuItem {
	item := components.MenuItem{
		Label:  fmt.Sprintf("%s %d. %s", l.Icon, l.Number, l.Title),
		Locked: !l.IsUnlocked,
	}
	switch {
	case !l.IsUnlocked:
		item.Detail = "🔒"
	case !l.Playable():
		item.Detail = "soon"
	case l.IsCompleted:
		item.Detail = fmt.Sprintf("✓ %d pts", l.EarnedPoints)
	}

	number, title, icon := l.Number, l.Title, l.Icon
	if !l.Playable() {
		item.Action = func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: placeholder.New(title, icon)} }
		}
		return item
	}
	ctrl, c := h.ctrl, h.coach
	item.Action = func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: sessionscreen.New(ctrl, c, number)}
		}
	}
	return item
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// HandlesEscape is true while the reset question is open so esc cancels
// it.
func (h *HomeScreen) HandlesEscape() bool { return h.confirmReset }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resetMsg:
		h.confirmReset = true
		return h, nil
	case tea.KeyPressMsg:
		if h.confirmReset {
			return h, h.handleResetKey(msg.String())
		}
	}

	// Lessons may have been completed since the last update.
	h.menu = h.menu.SetItems(h.items())
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// handleResetKey answers the reset question. A failed save still resets
// the learner in memory and raises the save warning.
func (h *HomeScreen) handleResetKey(key string) tea.Cmd {
	switch key {
	case "y", "Y":
		h.confirmReset = false
		text := ""
		if _, err := h.ctrl.ResetProgress(context.Background()); err != nil {
			text = sessionscreen.SaveWarning
		}
		h.menu = components.NewMenu(h.items())
		return func() tea.Msg { return screen.WarningMsg{Text: text} }
	case "n", "N", "esc":
		h.confirmReset = false
	}
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	if h.confirmReset {
		content := theme.Title.Render("Reset all progress?") + "\n\n" +
			theme.Hint.Render("Your points and finished lessons will be cleared.") + "\n\n" +
			theme.Hint.Render("Y to reset · N to cancel")
		return renderFrame(content, width, height)
	}
	h.menu = h.menu.SetItems(h.items())

	compact := height+layout.HeaderHeight+layout.FooterHeight < 34 || width < 90
	cw := components.ContentWidth(width)
	p := h.ctrl.Snapshot().Progress

	var sections []string
	sections = append(sections, renderTitle(cw))
	if !compact {
		sections = append(sections, renderMountain(p.MountainProgress, cw))
	}
	sections = append(sections, renderStatsBar(p.TotalPoints, p.CurrentLevel, cw, compact))
	sections = append(sections, h.menu.View(cw))

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
