package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathjourney/internal/coach"
	"github.com/abhisek/mathjourney/internal/drills"
	"github.com/abhisek/mathjourney/internal/game"
	"github.com/abhisek/mathjourney/internal/lesson"
	"github.com/abhisek/mathjourney/internal/progress"
	"github.com/abhisek/mathjourney/internal/router"
	"github.com/abhisek/mathjourney/internal/screen"
	"github.com/abhisek/mathjourney/internal/screens/summary"
	"github.com/abhisek/mathjourney/internal/ui/components"
	"github.com/abhisek/mathjourney/internal/ui/layout"
)

// SaveWarning is shown when the progress record could not be written.
const SaveWarning = "Progress may not be saved."

// SessionScreen plays one lesson. The controller commits every verdict
// at once; the screen holds the old item on screen for a short reveal
// before showing the next one.
type SessionScreen struct {
	ctrl   *game.Controller
	coach  *coach.Service
	number int

	shown    lesson.Activity
	next     lesson.Activity
	verdict  *drills.Verdict
	finished *game.Completion

	revealing bool
	seq       int

	input      components.TextInput
	hint       string
	hintItem   string
	note       string
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a screen that opens lesson number when it starts. coach
// may be nil.
func New(ctrl *game.Controller, c *coach.Service, number int) *SessionScreen {
	return &SessionScreen{
		ctrl:   ctrl,
		coach:  c,
		number: number,
		input:  components.NewTextInput("Type your answer...", 20),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return openLessonMsg{} },
		s.input.Init(),
	)
}

func (s *SessionScreen) Title() string {
	if s.shown.Title != "" {
		return s.shown.Title
	}
	return "Lesson"
}

// HandlesEscape is true so esc asks before leaving the lesson.
func (s *SessionScreen) HandlesEscape() bool { return s.errMsg == "" }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave lesson"},
			{Key: "N", Description: "Keep going"},
		}
	case s.revealing:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}

	switch s.shown.State {
	case lesson.WarmupComplete:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Esc", Description: "Leave"}}
	case lesson.MainActivityActive:
		if s.shown.Store != nil {
			return []layout.KeyHint{
				{Key: "T", Description: "Basket of 10"},
				{Key: "O", Description: "Single apple"},
				{Key: "C", Description: "Clear"},
				{Key: "Enter", Description: "Give"},
				{Key: "Esc", Description: "Leave"},
			}
		}
		return []layout.KeyHint{
			{Key: "←→", Description: "Turn 5°"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case openLessonMsg:
		return s, s.open()

	case revealDoneMsg:
		if msg.seq != s.seq || !s.revealing {
			return s, nil
		}
		return s, s.endReveal()

	case hintMsg:
		if msg.err == nil && msg.text != "" && msg.item == s.itemKey(s.current()) {
			s.hint = msg.text
		}
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.shown.State == lesson.WarmupActive && !s.revealing && !s.confirming {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) open() tea.Cmd {
	snap, err := s.ctrl.OpenLesson(context.Background(), s.number)
	if err != nil {
		switch {
		case errors.Is(err, game.ErrLessonLocked):
			s.errMsg = "This lesson is still locked. Finish the one before it first!"
		case errors.Is(err, game.ErrComingSoon):
			s.errMsg = "This lesson is coming soon."
		default:
			s.errMsg = err.Error()
		}
		return nil
	}
	s.shown = snap.Activity
	return nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	ctx := context.Background()

	if s.errMsg != "" {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.revealing {
		return s.endReveal()
	}

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			if _, err := s.ctrl.AbandonLesson(ctx); err != nil {
				s.errMsg = err.Error()
				return nil
			}
			return func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirming = false
		}
		return nil
	}

	if key == "esc" {
		s.confirming = true
		return nil
	}

	switch s.shown.State {
	case lesson.WarmupActive:
		if key == "enter" {
			text := strings.TrimSpace(s.input.Value())
			if text == "" {
				return nil
			}
			s.input.Reset()
			snap, err := s.ctrl.SubmitAnswer(ctx, text)
			return s.afterSubmit(snap, err, text)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd

	case lesson.WarmupComplete:
		if key == "enter" || key == "space" {
			snap, err := s.ctrl.Continue(ctx)
			if err != nil {
				s.errMsg = err.Error()
				return nil
			}
			s.shown = snap.Activity
		}
		return nil

	case lesson.MainActivityActive:
		if s.shown.Store != nil {
			return s.handleStoreKey(ctx, key)
		}
		if s.shown.Angle != nil {
			return s.handleAngleKey(ctx, key)
		}
	}
	return nil
}

func (s *SessionScreen) handleStoreKey(ctx context.Context, key string) tea.Cmd {
	var (
		snap game.Snapshot
		err  error
	)
	switch key {
	case "t", "T":
		snap, err = s.ctrl.SelectUnit(ctx, drills.UnitTen)
	case "o", "O":
		snap, err = s.ctrl.SelectUnit(ctx, drills.UnitOne)
	case "c", "C", "backspace":
		snap, err = s.ctrl.ClearSelection(ctx)
	case "enter":
		b := s.shown.Store.Basket
		snap, err = s.ctrl.SubmitComposition(ctx)
		return s.afterSubmit(snap, err, fmt.Sprintf("%d tens %d ones", b.Tens, b.Ones))
	default:
		return nil
	}

	s.note = ""
	if errors.Is(err, drills.ErrSupplyExhausted) {
		s.note = "None of those left on the shelf!"
	}
	s.shown = snap.Activity
	return nil
}

func (s *SessionScreen) handleAngleKey(ctx context.Context, key string) tea.Cmd {
	switch key {
	case "left", "h":
		snap, _ := s.ctrl.RotateAngle(ctx, drills.Clockwise)
		s.shown = snap.Activity
	case "right", "l":
		snap, _ := s.ctrl.RotateAngle(ctx, drills.CounterClockwise)
		s.shown = snap.Activity
	case "enter":
		given := fmt.Sprintf("%d", s.shown.Angle.Angle)
		snap, err := s.ctrl.SubmitAngle(ctx)
		return s.afterSubmit(snap, err, given)
	}
	return nil
}

// afterSubmit starts the reveal for a verdict and asks the coach for a
// hint when the learner keeps missing the same item.
func (s *SessionScreen) afterSubmit(snap game.Snapshot, err error, given string) tea.Cmd {
	var cmds []tea.Cmd

	var pe *progress.PersistenceError
	if err != nil {
		if snap.Completion == nil && !errors.As(err, &pe) {
			s.errMsg = err.Error()
			return nil
		}
		cmds = append(cmds, func() tea.Msg { return screen.WarningMsg{Text: SaveWarning} })
	}
	if snap.Verdict == nil {
		s.shown = snap.Activity
		return tea.Batch(cmds...)
	}

	before := s.shown
	s.verdict = snap.Verdict
	s.next = snap.Activity
	s.finished = snap.Completion
	s.revealing = true
	s.seq++
	s.note = ""
	if snap.Verdict.Correct {
		s.hint = ""
	}

	seq := s.seq
	cmds = append(cmds, tea.Tick(revealDelay(before), func(time.Time) tea.Msg {
		return revealDoneMsg{seq: seq}
	}))
	if cmd := s.requestHint(before, snap.Activity, given); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) endReveal() tea.Cmd {
	s.revealing = false
	if s.finished != nil {
		c, maxPoints := *s.finished, s.shown.MaxPoints
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(c, maxPoints)}
		}
	}
	if s.verdict != nil && s.verdict.Correct {
		s.verdict = nil
	}
	s.shown = s.next
	return nil
}

func revealDelay(a lesson.Activity) time.Duration {
	switch {
	case a.Store != nil:
		return storeReveal
	case a.Angle != nil:
		return angleReveal
	default:
		return warmupReveal
	}
}

// current returns the activity the learner will act on next.
func (s *SessionScreen) current() lesson.Activity {
	if s.revealing {
		return s.next
	}
	return s.shown
}

// itemKey identifies the item on screen so late hints for an earlier
// item are dropped.
func (s *SessionScreen) itemKey(a lesson.Activity) string {
	switch {
	case a.Warmup != nil:
		return fmt.Sprintf("warmup/%d", a.Warmup.Index)
	case a.Store != nil:
		return fmt.Sprintf("store/%d", a.Store.Position)
	case a.Angle != nil:
		return fmt.Sprintf("angle/%d", a.Angle.Index)
	}
	return ""
}

func (s *SessionScreen) requestHint(before, after lesson.Activity, given string) tea.Cmd {
	if !s.coach.Enabled() || s.verdict.Correct {
		return nil
	}

	var in coach.HintInput
	switch {
	case after.Warmup != nil && before.Warmup != nil:
		in = coach.HintInput{
			Activity: game.ActivityWarmup,
			Question: after.Warmup.Prompt.Question(),
			Misses:   after.Warmup.Misses,
			Answer:   after.Warmup.Prompt.Answer,
		}
	case after.Store != nil:
		o := after.Store.Order
		in = coach.HintInput{
			Activity: game.ActivityStore,
			Question: fmt.Sprintf("%s wants %d apples.", o.Customer, o.Quantity),
			Misses:   after.Store.Misses,
			Answer:   fmt.Sprintf("%d baskets", o.Quantity/10),
		}
	case after.Angle != nil:
		in = coach.HintInput{
			Activity: game.ActivityAngle,
			Question: fmt.Sprintf("Turn the beam to a right angle to build the %s.", after.Angle.NextPart),
			Misses:   after.Angle.Misses,
		}
	default:
		return nil
	}
	if !coach.Due(in.Misses) {
		return nil
	}
	in.Given = given

	item := s.itemKey(after)
	svc := s.coach
	return func() tea.Msg {
		text, err := svc.Hint(context.Background(), in)
		return hintMsg{item: item, text: text, err: err}
	}
}
