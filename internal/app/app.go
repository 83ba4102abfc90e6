package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/coach"
	"github.com/abhisek/mathjourney/internal/game"
	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/screen"
	"github.com/abhisek/mathjourney/internal/screens/history"
	"github.com/abhisek/mathjourney/internal/screens/home"
	sessionscreen "github.com/abhisek/mathjourney/internal/screens/session"
	"github.com/abhisek/mathjourney/internal/screens/welcome"
	"github.com/abhisek/mathjourney/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Controller *game.Controller
	Coach      *coach.Service // nil disables hints
	History    history.Source // nil hides the history screen

	// StartLesson opens a lesson straight away, skipping the splash.
	StartLesson int

	// Warning is shown as a banner from the start, e.g. when the saved
	// progress could not be read.
	Warning string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	ctrl    *game.Controller
	warning string
	width   int
	height  int
}

// newAppModel creates the root model with the welcome splash, or with
// the home screen and an open lesson when one was requested.
func newAppModel(opts Options) AppModel {
	newHome := func() screen.Screen {
		return home.New(opts.Controller, opts.Coach, opts.History)
	}

	m := AppModel{ctrl: opts.Controller, warning: opts.Warning}
	if opts.StartLesson > 0 {
		m.router = router.New(newHome())
		m.router.Push(sessionscreen.New(opts.Controller, opts.Coach, opts.StartLesson))
		return m
	}
	m.router = router.New(welcome.New(newHome))
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.WarningMsg:
		m.warning = msg.Text
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	p := m.ctrl.Snapshot().Progress
	header := layout.RenderHeader(title, p.TotalPoints, p.CurrentLevel, m.width)
	if m.warning != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, layout.RenderBanner(m.warning, m.width))
	}

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "any key", Description: "Start"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
