// Package progress holds the learner's persisted progress record and the
// stores that load and save it.
package progress

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/mathjourney/internal/scoring"
)

// CurrentVersion is the record layout written by this build. Records
// without a version field predate versioning and are read as version 1.
const CurrentVersion = 1

// State is the persisted progress record.
//
// CurrentLevel and MountainProgress are cached projections of TotalPoints.
// They are recomputed by Normalize and never trusted from disk.
type State struct {
	Version          int         `json:"version"`
	TotalPoints      int         `json:"totalPoints"`
	CurrentLevel     int         `json:"currentLevel"`
	CompletedLessons []int       `json:"completedLessons"`
	LessonScores     map[int]int `json:"lessonScores"`
	MountainProgress float64     `json:"mountainProgress"`
	LastPlayed       time.Time   `json:"lastPlayed"`
}

// Zero returns the state of a learner who has never played.
func Zero(now time.Time) State {
	return State{
		Version:          CurrentVersion,
		TotalPoints:      0,
		CurrentLevel:     1,
		CompletedLessons: []int{},
		LessonScores:     map[int]int{},
		MountainProgress: 0,
		LastPlayed:       now,
	}
}

// Normalize returns a copy of s with derived fields recomputed, the
// completed set sorted and de-duplicated, and nil collections replaced by
// empty ones. The receiver is not modified.
func (s State) Normalize() State {
	out := s
	out.Version = CurrentVersion
	if out.TotalPoints < 0 {
		out.TotalPoints = 0
	}
	out.CurrentLevel = scoring.LevelFor(out.TotalPoints)
	out.MountainProgress = scoring.ProgressFractionFor(out.TotalPoints)

	completed := slices.Clone(s.CompletedLessons)
	if completed == nil {
		completed = []int{}
	}
	slices.Sort(completed)
	out.CompletedLessons = slices.Compact(completed)

	if s.LessonScores == nil {
		out.LessonScores = map[int]int{}
	} else {
		out.LessonScores = maps.Clone(s.LessonScores)
	}
	return out
}

// HasCompleted reports whether the lesson is in the completed set.
func (s State) HasCompleted(lesson int) bool {
	return slices.Contains(s.CompletedLessons, lesson)
}

// WithCompletion returns a copy of s with a finished lesson folded in:
// points added to the total, the lesson marked completed with its score,
// and LastPlayed set to now.
func (s State) WithCompletion(lesson, points int, now time.Time) State {
	out := s.Normalize()
	out.TotalPoints += points
	out.CompletedLessons = append(out.CompletedLessons, lesson)
	out.LessonScores[lesson] = points
	out.LastPlayed = now
	return out.Normalize()
}
