package components

import (
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

// Button renders a single call to action such as "Continue".
func Button(label string, active bool) string {
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
