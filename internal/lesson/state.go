// Package lesson runs one lesson session: the warm-up, then each main
// activity stage in turn, then completion.
//
// The machine commits every verdict immediately and never waits on a
// timer. Pacing the reveal of the next question is up to the caller.
package lesson

import (
	"errors"

	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/drills"
)

// ErrInvalidEvent is returned when an event does not apply to the
// current state.
var ErrInvalidEvent = errors.New("event not valid in current state")

// ErrNoContent is returned when opening a lesson with nothing to play.
var ErrNoContent = errors.New("lesson has no activities")

// State is the lifecycle position of a session.
type State int

const (
	Idle State = iota
	WarmupActive
	WarmupComplete
	MainActivityActive
	LessonComplete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case WarmupActive:
		return "warmup"
	case WarmupComplete:
		return "warmup-complete"
	case MainActivityActive:
		return "main-activity"
	case LessonComplete:
		return "lesson-complete"
	default:
		return "unknown"
	}
}

// Stage is one main activity within a lesson.
type Stage string

const (
	StageStorefront Stage = "store"
	StageAngle      Stage = "angle"
)

// Plan is everything needed to run a lesson.
type Plan struct {
	Lesson    int
	Title     string
	MaxPoints int
	Content   catalog.Content
}

// PlanFor builds a plan from a catalog entry.
func PlanFor(l catalog.Lesson) Plan {
	return Plan{
		Lesson:    l.Number,
		Title:     l.Title,
		MaxPoints: l.MaxPoints,
		Content:   l.Content,
	}
}

// Result is the outcome of a finished lesson.
type Result struct {
	Lesson       int
	Points       int
	WarmupPoints int
	StorePoints  int
	AnglePoints  int
}

// Activity is a read-only view of the session for rendering.
type Activity struct {
	State     State
	Lesson    int
	Title     string
	Stage     Stage // empty outside MainActivityActive
	Points    int
	MaxPoints int

	WarmupPoints int
	Warmup       *WarmupView
	Store        *StoreView
	Angle        *AngleView

	// Last is the verdict of the most recent submission.
	Last drills.Verdict
}

// WarmupView describes the active warm-up prompt.
type WarmupView struct {
	Prompt drills.Prompt
	Index  int
	Len    int
	Misses int
}

// StoreView describes the active apple store order.
type StoreView struct {
	Order     drills.Order
	Position  int
	Len       int
	Retrying  bool
	Basket    drills.Supply
	Available drills.Supply
	Misses    int
}

// AngleView describes the active right-angle challenge.
type AngleView struct {
	Angle    int
	Index    int
	Len      int
	NextPart string
	Built    []string
	Misses   int
}
