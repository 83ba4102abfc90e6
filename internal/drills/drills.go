// Package drills implements the activity rules used inside a lesson: the
// "what comes after" warm-up, the apple store place-value drill and the
// right-angle house builder.
//
// Each drill judges one submission at a time and commits the result
// immediately. Wrong answers are feedback, never errors.
package drills

// Verdict is the outcome of one submission.
type Verdict struct {
	Correct  bool
	Awarded  int    // points earned by this submission, bonuses included
	Close    bool   // wrong but near the target; only changes wording
	Done     bool   // the drill has no items left
	Feedback string // text for the learner
}
