package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/drills"
	"github.com/abhisek/mathjourney/internal/lesson"
	"github.com/abhisek/mathjourney/internal/progress"
	"github.com/abhisek/mathjourney/internal/store"
)

// Activity labels used in the journal.
const (
	ActivityWarmup = "warmup"
	ActivityStore  = "store"
	ActivityAngle  = "angle"
)

// Controller applies events to the AppState. It is not safe for
// concurrent use; all events come from one input loop.
type Controller struct {
	state      AppState
	store      progress.Store
	journal    Journal
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger
	completion *Completion
	lesson     int // last opened lesson, kept for journaling after the session closes
}

// Option configures a Controller.
type Option func(*Controller)

// WithJournal records sessions and attempts to j.
func WithJournal(j Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDGenerator sets how session ids are made.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// New returns a controller over cat with the zero progress state. Call
// Load to read the stored record.
func New(st progress.Store, cat *catalog.Catalog, opts ...Option) *Controller {
	c := &Controller{
		store:  st,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.state = AppState{
		Progress: progress.Zero(c.now()),
		Catalog:  cat,
		Session:  lesson.New(),
	}
	return c
}

// Load reads the progress record and syncs the catalog with it. On error
// the controller continues from the zero state the store returned.
func (c *Controller) Load(ctx context.Context) error {
	st, err := c.store.Load(ctx)
	c.state.Progress = st.Normalize()
	c.state.Catalog.ApplyProgress(c.state.Progress)
	if err != nil {
		c.logger.Warn("progress load failed, starting fresh", "error", err)
	}
	return err
}

// State returns the owned state. Callers must not mutate it.
func (c *Controller) State() *AppState { return &c.state }

// Snapshot returns the current view. The progress record is a copy.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Progress:   c.state.Progress.Normalize(),
		Lessons:    c.state.Catalog.Lessons(),
		Activity:   c.state.Session.Snapshot(),
		SessionID:  c.state.SessionID,
		Completion: c.completion,
	}
}

// OpenLesson starts a session for lesson number.
func (c *Controller) OpenLesson(ctx context.Context, number int) (Snapshot, error) {
	c.completion = nil
	l, ok := c.state.Catalog.Lookup(number)
	if !ok {
		return c.Snapshot(), fmt.Errorf("open lesson %d: %w", number, catalog.ErrUnknownLesson)
	}
	if !l.IsUnlocked {
		return c.Snapshot(), fmt.Errorf("open lesson %d: %w", number, ErrLessonLocked)
	}
	if !l.Playable() {
		return c.Snapshot(), fmt.Errorf("open lesson %d: %w", number, ErrComingSoon)
	}
	if err := c.state.Session.Open(lesson.PlanFor(l)); err != nil {
		return c.Snapshot(), fmt.Errorf("open lesson %d: %w", number, err)
	}

	c.state.SessionID = c.newID()
	c.lesson = number
	c.logger.Debug("lesson opened", "lesson", number, "session_id", c.state.SessionID)
	c.recordLesson(ctx, store.ActionStart, l.Title, 0)
	return c.Snapshot(), nil
}

// SubmitAnswer answers the active warm-up prompt.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) (Snapshot, error) {
	c.completion = nil
	before := c.state.Session.Snapshot()
	v, err := c.state.Session.SubmitAnswer(text)
	if err != nil {
		return c.Snapshot(), err
	}
	if w := before.Warmup; w != nil {
		c.recordAttempt(ctx, ActivityWarmup, w.Prompt.Question(), w.Prompt.Answer, text, v)
	}
	return c.afterVerdict(ctx, v)
}

// Continue moves from the warm-up summary to the main activity.
func (c *Controller) Continue(ctx context.Context) (Snapshot, error) {
	c.completion = nil
	if err := c.state.Session.Continue(); err != nil {
		return c.Snapshot(), err
	}
	return c.Snapshot(), nil
}

// SelectUnit adds one unit to the apple store basket.
func (c *Controller) SelectUnit(ctx context.Context, u drills.Unit) (Snapshot, error) {
	c.completion = nil
	err := c.state.Session.SelectUnit(u)
	return c.Snapshot(), err
}

// ClearSelection empties the apple store basket.
func (c *Controller) ClearSelection(ctx context.Context) (Snapshot, error) {
	c.completion = nil
	err := c.state.Session.ClearSelection()
	return c.Snapshot(), err
}

// SubmitComposition hands the basket to the active customer.
func (c *Controller) SubmitComposition(ctx context.Context) (Snapshot, error) {
	c.completion = nil
	before := c.state.Session.Snapshot()
	v, err := c.state.Session.SubmitComposition()
	if err != nil {
		return c.Snapshot(), err
	}
	if s := before.Store; s != nil {
		c.recordAttempt(ctx, ActivityStore,
			fmt.Sprintf("%s wants %d apples", s.Order.Customer, s.Order.Quantity),
			fmt.Sprintf("%d tens %d ones", s.Order.Quantity/10, s.Order.Quantity%10),
			fmt.Sprintf("%d tens %d ones", s.Basket.Tens, s.Basket.Ones),
			v)
	}
	return c.afterVerdict(ctx, v)
}

// RotateAngle turns the active angle one step.
func (c *Controller) RotateAngle(ctx context.Context, d drills.Direction) (Snapshot, error) {
	c.completion = nil
	_, err := c.state.Session.RotateAngle(d)
	return c.Snapshot(), err
}

// SubmitAngle checks the active angle.
func (c *Controller) SubmitAngle(ctx context.Context) (Snapshot, error) {
	c.completion = nil
	before := c.state.Session.Snapshot()
	v, err := c.state.Session.SubmitAngle()
	if err != nil {
		return c.Snapshot(), err
	}
	if a := before.Angle; a != nil {
		c.recordAttempt(ctx, ActivityAngle,
			fmt.Sprintf("Build the %s", a.NextPart),
			fmt.Sprintf("%d", drills.TargetAngle),
			fmt.Sprintf("%d", a.Angle),
			v)
	}
	return c.afterVerdict(ctx, v)
}

// AbandonLesson discards the open session and its points.
func (c *Controller) AbandonLesson(ctx context.Context) (Snapshot, error) {
	c.completion = nil
	title := c.state.Session.Snapshot().Title
	number, discarded, err := c.state.Session.Abandon()
	if err != nil {
		return c.Snapshot(), err
	}
	c.logger.Debug("lesson abandoned", "lesson", number, "discarded", discarded)
	c.recordLesson(ctx, store.ActionAbandon, title, discarded)
	c.state.SessionID = ""
	return c.Snapshot(), nil
}

// ResetProgress discards any open session and returns the learner to the
// zero state. The reset record is saved.
func (c *Controller) ResetProgress(ctx context.Context) (Snapshot, error) {
	c.completion = nil
	if c.state.Session.State() != lesson.Idle {
		if _, err := c.AbandonLesson(ctx); err != nil {
			return c.Snapshot(), err
		}
	}
	c.state.Progress = progress.Zero(c.now())
	c.state.Catalog.ApplyProgress(c.state.Progress)
	c.logger.Info("progress reset")
	return c.Snapshot(), c.save(ctx)
}

// afterVerdict finishes the lesson when the verdict completed it.
func (c *Controller) afterVerdict(ctx context.Context, v drills.Verdict) (Snapshot, error) {
	if c.state.Session.State() != lesson.LessonComplete {
		snap := c.Snapshot()
		snap.Verdict = &v
		return snap, nil
	}
	err := c.complete(ctx)
	snap := c.Snapshot()
	snap.Verdict = &v
	return snap, err
}

// complete folds the finished session into the progress record, unlocks
// the next lesson and saves. A save failure is returned but the new
// state is kept.
func (c *Controller) complete(ctx context.Context) error {
	title := c.state.Session.Snapshot().Title
	res, err := c.state.Session.Finish()
	if err != nil {
		return err
	}

	levelBefore := c.state.Progress.CurrentLevel
	c.state.Progress = c.state.Progress.WithCompletion(res.Lesson, res.Points, c.now())
	if err := c.state.Catalog.MarkCompleted(res.Lesson, res.Points); err != nil {
		return err
	}

	c.completion = &Completion{
		Result:      res,
		Title:       title,
		TotalPoints: c.state.Progress.TotalPoints,
		LevelBefore: levelBefore,
		LevelAfter:  c.state.Progress.CurrentLevel,
	}
	c.logger.Info("lesson completed",
		"lesson", res.Lesson,
		"points", res.Points,
		"total", c.state.Progress.TotalPoints,
		"level", c.state.Progress.CurrentLevel)
	c.recordLesson(ctx, store.ActionComplete, title, res.Points)
	c.state.SessionID = ""
	return c.save(ctx)
}

func (c *Controller) save(ctx context.Context) error {
	if err := c.store.Save(ctx, c.state.Progress); err != nil {
		c.logger.Warn("progress not saved", "error", err)
		return err
	}
	return nil
}

func (c *Controller) recordLesson(ctx context.Context, action, title string, points int) {
	if c.journal == nil {
		return
	}
	err := c.journal.AppendLessonEvent(ctx, store.LessonEventData{
		SessionID:   c.state.SessionID,
		Lesson:      c.lesson,
		Title:       title,
		Action:      action,
		Points:      points,
		TotalPoints: c.state.Progress.TotalPoints,
	})
	if err != nil {
		c.logger.Warn("journal lesson event failed", "action", action, "error", err)
	}
}

func (c *Controller) recordAttempt(ctx context.Context, activity, prompt, expected, given string, v drills.Verdict) {
	if c.journal == nil {
		return
	}
	err := c.journal.AppendAttemptEvent(ctx, store.AttemptEventData{
		SessionID: c.state.SessionID,
		Lesson:    c.lesson,
		Activity:  activity,
		Prompt:    prompt,
		Expected:  expected,
		Given:     given,
		Correct:   v.Correct,
		Awarded:   v.Awarded,
	})
	if err != nil {
		c.logger.Warn("journal attempt failed", "activity", activity, "error", err)
	}
}
