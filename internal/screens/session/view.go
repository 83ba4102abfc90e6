package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathjourney/internal/drills"
	"github.com/abhisek/mathjourney/internal/lesson"
	"github.com/abhisek/mathjourney/internal/ui/components"
	"github.com/abhisek/mathjourney/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.confirming {
		return renderQuitConfirm(width, height, s.shown.Points)
	}
	if s.shown.State == lesson.Idle {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Getting the lesson ready...")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	var body string
	switch a := s.shown; {
	case a.State == lesson.WarmupComplete:
		body = renderWarmupDone(a)
	case a.Warmup != nil:
		body = s.renderWarmup(a.Warmup)
	case a.Store != nil:
		body = renderStore(a.Store)
	case a.Angle != nil:
		body = renderAngle(a.Angle, cw)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(body, cw)))
	b.WriteString("\n\n")

	if fb := s.renderFeedback(); fb != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
		b.WriteString("\n")
	}
	if s.note != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(s.note)))
		b.WriteString("\n")
	}
	if s.hint != "" && !s.revealing {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Width(cw).Render("💡 "+s.hint)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *SessionScreen) renderInfoLine(width int) string {
	a := s.shown
	stage := "Warm-up"
	switch {
	case a.Store != nil:
		stage = "Apple Store"
	case a.Angle != nil:
		stage = "House Builder"
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", a.Title, stage))
	right := lipgloss.NewStyle().Foreground(theme.Warning).
		Render(fmt.Sprintf("★ %d / %d", a.Points, a.MaxPoints))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad <= 0 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *SessionScreen) renderWarmup(w *lesson.WarmupView) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Warm-up %d of %d", w.Index+1, w.Len)))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(w.Prompt.Question()))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	return b.String()
}

func renderWarmupDone(a lesson.Activity) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Warm-up complete!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("You earned %d warm-up points.", a.WarmupPoints)))
	b.WriteString("\n\n")
	b.WriteString(components.Button("Continue", true))
	return b.String()
}

func renderStore(st *lesson.StoreView) string {
	apple := lipgloss.NewStyle().Foreground(theme.Apple)

	var b strings.Builder
	order := fmt.Sprintf("Order %d of %d", min(st.Position+1, st.Len), st.Len)
	if st.Retrying {
		order += " · one more try"
	}
	b.WriteString(theme.Subtitle.Render(order))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s wants %d apples", st.Order.Customer, st.Order.Quantity)))
	b.WriteString("\n\n")

	basket := strings.Repeat("🧺", st.Basket.Tens) + strings.Repeat("🍎", st.Basket.Ones)
	if basket == "" {
		basket = lipgloss.NewStyle().Foreground(theme.TextDim).Render("(empty)")
	}
	b.WriteString("Your bag: " + basket)
	b.WriteString("\n")
	total := st.Basket.Tens*drills.UnitTen.Value() + st.Basket.Ones*drills.UnitOne.Value()
	b.WriteString(apple.Render(fmt.Sprintf("%d baskets + %d singles = %d apples", st.Basket.Tens, st.Basket.Ones, total)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("On the shelf: %d baskets of ten, %d single apples",
		st.Available.Tens, st.Available.Ones)))
	return b.String()
}

func renderAngle(a *lesson.AngleView, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Right angle %d of %d · build the %s", a.Index+1, a.Len, a.NextPart)))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("∠ %d°", a.Angle)))
	b.WriteString("\n\n")
	b.WriteString(renderDial(a.Angle, min(cw-4, 37)))
	b.WriteString("\n\n")

	var parts []string
	for _, p := range a.Built {
		parts = append(parts, theme.Correct.Render("✓ "+p))
	}
	if len(parts) > 0 {
		b.WriteString(strings.Join(parts, "  "))
	} else {
		b.WriteString(theme.Hint.Render("Nothing built yet"))
	}
	return b.String()
}

// renderDial draws a 0 to 180 degree scale with a marker at 90 and the
// current angle as a pointer. Angles past 180 pin to the right end.
func renderDial(angle, width int) string {
	width = max(width, 9)
	cells := []rune(strings.Repeat("─", width))
	mid := width / 2
	cells[mid] = '┼'

	deg := angle
	if deg > 180 {
		deg = 180
	}
	pos := deg * (width - 1) / 180
	scale := string(cells)

	pointer := strings.Repeat(" ", pos) + "▲"
	style := theme.Incorrect
	switch {
	case angle == drills.TargetAngle:
		style = theme.Correct
	case abs(angle-drills.TargetAngle) < drills.CloseBand:
		style = theme.Close
	}
	return lipgloss.NewStyle().Foreground(theme.Border).Render(scale) + "\n" + style.Render(pointer)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (s *SessionScreen) renderFeedback() string {
	v := s.verdict
	if v == nil || v.Feedback == "" {
		return ""
	}
	style := theme.Incorrect
	switch {
	case v.Correct:
		style = theme.Correct
	case v.Close:
		style = theme.Close
	}
	text := v.Feedback
	if v.Awarded > 0 {
		text += fmt.Sprintf("\n+%d points", v.Awarded)
	}
	return lipgloss.NewStyle().Align(lipgloss.Center).Render(style.Render(text))
}

func renderQuitConfirm(width, height, points int) string {
	msg := "Leave this lesson?"
	if points > 0 {
		msg += fmt.Sprintf("\nThe %d points from this lesson will be lost.", points)
	}
	content := theme.Title.Render(msg) + "\n\n" + theme.Hint.Render("Y to leave · N to keep going")
	return components.Center(content, width, height)
}

func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().Foreground(theme.Error).Render(msg) +
		"\n\n" + theme.Hint.Render("press any key to go back")
	return components.Center(content, width, height)
}
