// Package coach asks a language model for a short hint after a learner
// misses the same item twice.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/abhisek/mathjourney/internal/llm"
)

// MissThreshold is how many consecutive misses on one item earn a hint.
const MissThreshold = 2

var (
	// ErrNoProvider is returned when hints are disabled or unconfigured.
	ErrNoProvider = errors.New("no hint provider")

	// ErrRevealsAnswer is returned when the model's hint gives the answer
	// away.
	ErrRevealsAnswer = errors.New("hint reveals the answer")
)

// HintSchema is the structured output requested from the model.
var HintSchema = &llm.Schema{
	Name:        "coach-hint",
	Description: "One short, encouraging hint for a young learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One sentence, at most 20 words, that does not state the answer",
				"minLength":   1,
				"maxLength":   200,
			},
		},
		"required":             []string{"hint"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You coach a child aged 6 to 8 through a math game.
Reply with one short, warm sentence that helps them think about the problem.
Never say the answer or any number that is the answer.`

// HintInput describes the item the learner is stuck on.
type HintInput struct {
	Activity string // warmup, store or angle
	Question string
	Given    string
	Misses   int

	// Answer is used only to reject hints that give it away. It is not
	// sent to the model.
	Answer string
}

// Service produces hints.
type Service struct {
	provider llm.Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

func WithTimeout(d time.Duration) Option { return func(s *Service) { s.timeout = d } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// New returns a coach over p. A nil provider makes every Hint call fail
// with ErrNoProvider.
func New(p llm.Provider, opts ...Option) *Service {
	s := &Service{provider: p, timeout: 10 * time.Second, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Enabled reports whether a provider is attached.
func (s *Service) Enabled() bool { return s != nil && s.provider != nil }

// Due reports whether misses warrant a hint.
func Due(misses int) bool { return misses >= MissThreshold }

// Hint asks the model for a hint. On any error the caller should show
// the drill's own feedback instead.
func (s *Service) Hint(ctx context.Context, in HintInput) (string, error) {
	if !s.Enabled() {
		return "", ErrNoProvider
	}
	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, "hint"), s.timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      userPrompt(in),
		Schema:      HintSchema,
		MaxTokens:   120,
		Temperature: 0.4,
	})
	if err != nil {
		s.logger.Debug("hint request failed", "activity", in.Activity, "error", err)
		return "", fmt.Errorf("hint: %w", err)
	}

	var out struct {
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("decode hint: %w", err)
	}
	hint := strings.TrimSpace(out.Hint)
	if reveals(hint, in.Answer) {
		s.logger.Debug("hint discarded", "activity", in.Activity, "reason", "reveals answer")
		return "", ErrRevealsAnswer
	}
	return hint, nil
}

func userPrompt(in HintInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity: %s\n", describeActivity(in.Activity))
	fmt.Fprintf(&b, "Question: %s\n", in.Question)
	if in.Given != "" {
		fmt.Fprintf(&b, "Their last answer: %s\n", in.Given)
	}
	fmt.Fprintf(&b, "They have missed this %d times in a row.", in.Misses)
	return b.String()
}

func describeActivity(a string) string {
	switch a {
	case "warmup":
		return "say what comes next after a day, number or letter"
	case "store":
		return "make an apple order from boxes of ten and single apples"
	case "angle":
		return "turn a beam until it makes a right angle (90 degrees)"
	default:
		return a
	}
}

// reveals reports whether hint contains answer as a whole word.
func reveals(hint, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(answer) + `\b`)
	return re.MatchString(hint)
}
