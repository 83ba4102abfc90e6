package store

import (
	"context"
	"time"

	"github.com/abhisek/mathjourney/internal/progress"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Snapshot is a stored copy of the progress record.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      progress.State
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is filled from the
	// global counter.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Lesson event actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// LessonEventData captures a lesson session transition.
type LessonEventData struct {
	SessionID   string
	Lesson      int
	Title       string
	Action      string
	Points      int
	TotalPoints int
}

// LessonEvent is a stored LessonEventData.
type LessonEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LessonEventData
}

// AttemptEventData captures one submission inside an activity.
type AttemptEventData struct {
	SessionID string
	Lesson    int
	Activity  string
	Prompt    string
	Expected  string
	Given     string
	Correct   bool
	Awarded   int
}

// ActivityStat summarizes attempts for one activity.
type ActivityStat struct {
	Activity string
	Attempts int
	Correct  int
}

// Accuracy returns the fraction of correct attempts.
func (a ActivityStat) Accuracy() float64 {
	if a.Attempts == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempts)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the journal.
type EventRepo interface {
	AppendLessonEvent(ctx context.Context, data LessonEventData) error
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLessonEvents returns lesson events, newest first.
	QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEvent, error)

	// ActivityAccuracy returns attempt counts per activity.
	ActivityAccuracy(ctx context.Context) ([]ActivityStat, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event by id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
