package drills

import (
	"fmt"
	"strconv"
	"strings"
)

// Category selects the successor rule for a warm-up prompt.
type Category string

const (
	CategoryDay    Category = "day"
	CategoryNumber Category = "number"
	CategoryLetter Category = "letter"
)

// Warm-up scoring.
const (
	PromptPoints = 1
	WarmupBonus  = 1
)

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryDay, CategoryNumber, CategoryLetter:
		return true
	}
	return false
}

// Successor returns what comes after text in the given category, in
// lower case. Days wrap from Saturday to Sunday and letters from z to a.
func Successor(c Category, text string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch c {
	case CategoryDay:
		for i, d := range weekdays {
			if d == t {
				return weekdays[(i+1)%len(weekdays)], nil
			}
		}
		return "", fmt.Errorf("%q is not a day of the week", text)
	case CategoryNumber:
		n, err := strconv.Atoi(t)
		if err != nil {
			return "", fmt.Errorf("%q is not a whole number", text)
		}
		return strconv.Itoa(n + 1), nil
	case CategoryLetter:
		if len(t) != 1 || t[0] < 'a' || t[0] > 'z' {
			return "", fmt.Errorf("%q is not a letter", text)
		}
		if t[0] == 'z' {
			return "a", nil
		}
		return string(t[0] + 1), nil
	default:
		return "", fmt.Errorf("unknown category %q", c)
	}
}

// Prompt is a single "what comes after" question.
type Prompt struct {
	Text     string
	Category Category
	Answer   string
}

// NewPrompt builds a prompt whose answer is the successor of text.
func NewPrompt(text string, c Category) (Prompt, error) {
	ans, err := Successor(c, text)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Text: text, Category: c, Answer: ans}, nil
}

// Question returns the prompt as shown to the learner.
func (p Prompt) Question() string {
	return fmt.Sprintf("What comes after %s?", p.Text)
}

// Accepts reports whether input answers the prompt. Case and surrounding
// whitespace are ignored.
func (p Prompt) Accepts(input string) bool {
	return strings.ToLower(strings.TrimSpace(input)) == p.Answer
}

// Warmup runs a fixed sequence of prompts.
type Warmup struct {
	prompts []Prompt
	index   int
	points  int
	misses  int
}

// NewWarmup returns a warm-up over prompts.
func NewWarmup(prompts []Prompt) *Warmup {
	return &Warmup{prompts: append([]Prompt(nil), prompts...)}
}

// Current returns the active prompt. ok is false once the warm-up is done.
func (w *Warmup) Current() (p Prompt, ok bool) {
	if w.Done() {
		return Prompt{}, false
	}
	return w.prompts[w.index], true
}

// Index returns the zero-based position of the active prompt.
func (w *Warmup) Index() int { return w.index }

// Len returns the number of prompts.
func (w *Warmup) Len() int { return len(w.prompts) }

// Done reports whether every prompt has been answered.
func (w *Warmup) Done() bool { return w.index >= len(w.prompts) }

// Points returns the points earned so far.
func (w *Warmup) Points() int { return w.points }

// Misses returns consecutive wrong answers on the active prompt.
func (w *Warmup) Misses() int { return w.misses }

// MaxPoints returns the most a perfect run can earn.
func (w *Warmup) MaxPoints() int {
	if len(w.prompts) == 0 {
		return 0
	}
	return len(w.prompts)*PromptPoints + WarmupBonus
}

// Submit judges input against the active prompt. A correct answer moves
// to the next prompt; a wrong one leaves everything as it was.
func (w *Warmup) Submit(input string) Verdict {
	p, ok := w.Current()
	if !ok {
		return Verdict{Done: true}
	}
	if !p.Accepts(input) {
		w.misses++
		return Verdict{Feedback: "Not quite! Try again!"}
	}

	w.misses = 0
	w.index++
	v := Verdict{Correct: true, Awarded: PromptPoints, Feedback: "Correct! Great job!"}
	if w.Done() {
		v.Awarded += WarmupBonus
		v.Done = true
		v.Feedback = "Warm-up complete! Bonus point!"
	}
	w.points += v.Awarded
	return v
}
