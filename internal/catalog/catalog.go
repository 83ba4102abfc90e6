// Package catalog holds the ordered list of lessons and the rule that
// unlocks them one after another.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/mathjourney/internal/drills"
	"github.com/abhisek/mathjourney/internal/progress"
)

// ErrUnknownLesson is returned for a lesson number not in the catalog.
var ErrUnknownLesson = errors.New("unknown lesson")

// Lesson is one catalog entry.
type Lesson struct {
	Number       int
	Title        string
	Icon         string
	Description  string
	MaxPoints    int
	IsUnlocked   bool
	IsCompleted  bool
	EarnedPoints int
	Content      Content
}

// Playable reports whether the lesson has any activity to run.
func (l Lesson) Playable() bool { return !l.Content.Empty() }

// Content is the activity material of a lesson.
type Content struct {
	Warmup []drills.Prompt
	Store  *StoreContent
	Angles *AngleContent
}

// StoreContent configures the apple store drill.
type StoreContent struct {
	Supply drills.Supply
	Orders []drills.Order
}

// AngleContent configures the right-angle house drill.
type AngleContent struct {
	Starts          []int
	HouseParts      []string
	CompletionBonus int
}

// Empty reports whether there is nothing to play.
func (c Content) Empty() bool {
	return len(c.Warmup) == 0 && c.Store == nil && c.Angles == nil
}

// PerfectScore returns the points for a run with no mistakes.
func (c Content) PerfectScore() int {
	total := 0
	if n := len(c.Warmup); n > 0 {
		total += n*drills.PromptPoints + drills.WarmupBonus
	}
	if c.Store != nil {
		total += len(c.Store.Orders) * drills.OrderPoints
	}
	if c.Angles != nil {
		total += len(c.Angles.Starts)*drills.AnglePoints + c.Angles.CompletionBonus
	}
	return total
}

// Catalog is the ordered lesson list. Order is play order.
type Catalog struct {
	lessons []Lesson
}

// New returns a catalog over lessons with only the first unlocked.
func New(lessons []Lesson) *Catalog {
	c := &Catalog{lessons: slices.Clone(lessons)}
	for i := range c.lessons {
		c.lessons[i].IsCompleted = false
		c.lessons[i].EarnedPoints = 0
	}
	c.relock()
	return c
}

// Lessons returns a copy of the entries in play order.
func (c *Catalog) Lessons() []Lesson {
	return slices.Clone(c.lessons)
}

// Len returns the number of lessons.
func (c *Catalog) Len() int { return len(c.lessons) }

// Lookup returns the lesson with the given number.
func (c *Catalog) Lookup(number int) (Lesson, bool) {
	i := c.indexOf(number)
	if i < 0 {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// ApplyProgress syncs completion flags and scores from st and recomputes
// unlocks. Applying the same state twice gives the same catalog.
func (c *Catalog) ApplyProgress(st progress.State) {
	for i := range c.lessons {
		l := &c.lessons[i]
		l.IsCompleted = st.HasCompleted(l.Number)
		l.EarnedPoints = 0
		if l.IsCompleted {
			l.EarnedPoints = st.LessonScores[l.Number]
		}
	}
	c.relock()
}

// MarkCompleted records a finished lesson and unlocks the one after it.
func (c *Catalog) MarkCompleted(number, points int) error {
	i := c.indexOf(number)
	if i < 0 {
		return fmt.Errorf("mark lesson %d completed: %w", number, ErrUnknownLesson)
	}
	c.lessons[i].IsCompleted = true
	c.lessons[i].EarnedPoints = points
	if i+1 < len(c.lessons) {
		c.lessons[i+1].IsUnlocked = true
	}
	return nil
}

// NextUnlocked returns the first unlocked, playable lesson not yet
// completed, if any.
func (c *Catalog) NextUnlocked() (Lesson, bool) {
	for _, l := range c.lessons {
		if l.IsUnlocked && !l.IsCompleted && l.Playable() {
			return l, true
		}
	}
	return Lesson{}, false
}

// relock applies the unlock rule: the first lesson is always open and
// every other lesson opens when the one before it is completed.
func (c *Catalog) relock() {
	for i := range c.lessons {
		c.lessons[i].IsUnlocked = i == 0 || c.lessons[i-1].IsCompleted
	}
}

func (c *Catalog) indexOf(number int) int {
	return slices.IndexFunc(c.lessons, func(l Lesson) bool { return l.Number == number })
}
