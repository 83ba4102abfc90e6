package session

import "time"

// openLessonMsg asks the screen to open its lesson on the update loop.
type openLessonMsg struct{}

// revealDoneMsg ends the feedback pause for submission seq.
type revealDoneMsg struct {
	seq int
}

// hintMsg carries a coach hint for the item identified by item.
type hintMsg struct {
	item string
	text string
	err  error
}

// Reveal pauses after a verdict, by activity.
const (
	warmupReveal = 1200 * time.Millisecond
	storeReveal  = 2500 * time.Millisecond
	angleReveal  = 2000 * time.Millisecond
)
