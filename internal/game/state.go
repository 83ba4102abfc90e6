// Package game owns the application state and turns presentation events
// into lesson progress, completed lessons and saved records.
package game

import (
	"context"
	"errors"

	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/drills"
	"github.com/abhisek/mathjourney/internal/lesson"
	"github.com/abhisek/mathjourney/internal/progress"
	"github.com/abhisek/mathjourney/internal/store"
)

var (
	// ErrLessonLocked is returned when opening a lesson that is not unlocked.
	ErrLessonLocked = errors.New("lesson is locked")

	// ErrComingSoon is returned when opening a lesson without activities.
	ErrComingSoon = errors.New("lesson is coming soon")
)

// Journal records lesson sessions and attempts. store.EventRepo
// satisfies it.
type Journal interface {
	AppendLessonEvent(ctx context.Context, data store.LessonEventData) error
	AppendAttemptEvent(ctx context.Context, data store.AttemptEventData) error
}

// AppState is everything the controller owns.
type AppState struct {
	Progress  progress.State
	Catalog   *catalog.Catalog
	Session   *lesson.Machine
	SessionID string // id of the open lesson session, empty when idle
}

// Snapshot is the read-only view returned after each event.
type Snapshot struct {
	Progress  progress.State
	Lessons   []catalog.Lesson
	Activity  lesson.Activity
	SessionID string

	// Verdict is the result of the submission handled by this event,
	// if it was one.
	Verdict *drills.Verdict

	// Completion is set by the event that finished a lesson.
	Completion *Completion
}

// Completion describes a lesson that was just finished and folded into
// the progress record.
type Completion struct {
	lesson.Result
	Title       string
	TotalPoints int
	LevelBefore int
	LevelAfter  int
}

// LeveledUp reports whether the lesson pushed the learner to a new level.
func (c Completion) LeveledUp() bool { return c.LevelAfter > c.LevelBefore }
