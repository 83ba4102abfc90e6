package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/screen"
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// PlaceholderScreen is shown for lessons that have no activities yet.
type PlaceholderScreen struct {
	title string
	icon  string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen for the named lesson.
func New(title, icon string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, icon: icon}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(p.icon + "  ╌╌ Coming Soon ╌╌\n\nThis lesson is still being built.\nCheck back later!")
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
