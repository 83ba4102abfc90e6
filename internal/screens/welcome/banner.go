package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/ui/theme"
)

const bannerArt = `
 ╔╦╗╔═╗╔╦╗╦ ╦   ╦╔═╗╦ ╦╦═╗╔╗╔╔═╗╦ ╦
 ║║║╠═╣ ║ ╠═╣   ║║ ║║ ║╠╦╝║║║║╣ ╚╦╝
 ╩ ╩╩ ╩ ╩ ╩ ╩  ╚╝╚═╝╚═╝╩╚═╝╚╝╚═╝ ╩ `

const bannerCompact = "M A T H   J O U R N E Y"

// RenderBanner returns the title banner, or a single line on terminals
// narrower than 44 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 44 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
