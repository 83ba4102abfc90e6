package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the journal tables.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	_, err := insert(ctx, r.db, r.seq, lessonEvents,
		[]string{"timestamp", "session_id", "lesson", "title", "action", "points", "total_points"},
		[]any{time.Now().UTC(), data.SessionID, data.Lesson, data.Title, data.Action, data.Points, data.TotalPoints},
	)
	if err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	_, err := insert(ctx, r.db, r.seq, attemptEvents,
		[]string{"timestamp", "session_id", "lesson", "activity", "prompt", "expected", "given", "correct", "awarded"},
		[]any{time.Now().UTC(), data.SessionID, data.Lesson, data.Activity, data.Prompt,
			data.Expected, data.Given, data.Correct, data.Awarded},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEvent, error) {
	sel := builder().Select("id", "sequence", "timestamp", "session_id", "lesson", "title", "action", "points", "total_points").
		From(entsql.Table(lessonEvents))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var out []LessonEvent
	for rows.Next() {
		var e LessonEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Lesson,
			&e.Title, &e.Action, &e.Points, &e.TotalPoints); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) ActivityAccuracy(ctx context.Context) ([]ActivityStat, error) {
	query, args := builder().Select("activity", entsql.Count("*"), entsql.Sum("correct")).
		From(entsql.Table(attemptEvents)).
		GroupBy("activity").
		OrderBy("activity").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity accuracy: %w", err)
	}
	defer rows.Close()

	var out []ActivityStat
	for rows.Next() {
		var st ActivityStat
		if err := rows.Scan(&st.Activity, &st.Attempts, &st.Correct); err != nil {
			return nil, fmt.Errorf("scan activity accuracy: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
