package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// MenuItem is one row of a Menu. Locked items are shown but skipped by
// the cursor.
type MenuItem struct {
	Label  string
	Detail string // right-hand note, e.g. a score
	Action func() tea.Cmd
	Locked bool
}

// Menu is a vertical list with a cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a menu with the cursor on the first unlocked item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// SetItems swaps the items and keeps the cursor in place when it still
// points at an unlocked row.
func (m Menu) SetItems(items []MenuItem) Menu {
	sel := m.Selected
	m.Items = items
	if sel >= len(items) || items[sel].Locked {
		sel = m.next(-1, 1)
	}
	m.Selected = max(sel, 0)
	return m
}

func (m Menu) next(from, step int) int {
	for i := from + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Locked {
			return i
		}
	}
	return -1
}

// Update moves the cursor and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil && !item.Locked {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// View renders the menu at the given width.
func (m Menu) View(width int) string {
	var b strings.Builder
	for i, item := range m.Items {
		prefix, style := "    ", theme.Unselected
		switch {
		case item.Locked:
			style = theme.Locked
		case i == m.Selected:
			prefix, style = "  ▸ ", theme.Selected
		}
		line := prefix + item.Label
		if item.Detail != "" {
			gap := max(width-len([]rune(line))-len([]rune(item.Detail)), 2)
			line += strings.Repeat(" ", gap) + item.Detail
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
