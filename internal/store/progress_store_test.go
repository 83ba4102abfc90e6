package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathjourney/internal/progress"
)

func TestProgressStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	ps := NewProgressStore(s.SnapshotRepo(), func() time.Time { return now }, nil)
	ctx := context.Background()

	st, err := ps.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if st.TotalPoints != 0 || st.CurrentLevel != 1 {
		t.Errorf("empty load = %+v, want zero state", st)
	}

	want := progress.Zero(now).WithCompletion(29, 115, now)
	if err := ps.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := ps.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalPoints != 115 || got.CurrentLevel != 2 || got.MountainProgress != 0.15 {
		t.Errorf("loaded totals = %+v", got)
	}
	if !got.HasCompleted(29) || got.LessonScores[29] != 115 {
		t.Errorf("loaded completion = %+v", got)
	}
	if !got.LastPlayed.Equal(now) {
		t.Errorf("lastPlayed = %v, want %v", got.LastPlayed, now)
	}
}

func TestProgressStore_KeepsBoundedHistory(t *testing.T) {
	s := openTestStore(t)
	ps := NewProgressStore(s.SnapshotRepo(), nil, nil)
	ctx := context.Background()

	for i := 0; i < keepSnapshots+5; i++ {
		st := progress.Zero(time.Now())
		st.TotalPoints = i
		if err := ps.Save(ctx, st); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	n, err := count(ctx, s.DB(), snapshotsTable)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != keepSnapshots {
		t.Errorf("kept %d snapshots, want %d", n, keepSnapshots)
	}
}

type failingRepo struct{ err error }

func (f failingRepo) Save(context.Context, *Snapshot) error { return f.err }
func (f failingRepo) Latest(context.Context) (*Snapshot, error) { return nil, f.err }
func (f failingRepo) Prune(context.Context, int) error { return f.err }

func TestProgressStore_Errors(t *testing.T) {
	boom := errors.New("disk on fire")
	ps := NewProgressStore(failingRepo{err: boom}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	st, err := ps.Load(ctx)
	var perr *progress.PersistenceError
	if !errors.As(err, &perr) || perr.Op != "load" || !errors.Is(err, boom) {
		t.Errorf("load err = %v", err)
	}
	if st.TotalPoints != 0 || st.LessonScores == nil {
		t.Errorf("load should fall back to zero state, got %+v", st)
	}

	err = ps.Save(ctx, st)
	if !errors.As(err, &perr) || perr.Op != "save" {
		t.Errorf("save err = %v", err)
	}
}

// pruneFailingRepo stores snapshots but cannot prune them.
type pruneFailingRepo struct {
	saved int
	err   error
}

func (r *pruneFailingRepo) Save(context.Context, *Snapshot) error { r.saved++; return nil }
func (r *pruneFailingRepo) Latest(context.Context) (*Snapshot, error) { return nil, nil }
func (r *pruneFailingRepo) Prune(context.Context, int) error { return r.err }

func TestProgressStore_PruneFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	repo := &pruneFailingRepo{err: errors.New("database is locked")}
	ps := NewProgressStore(repo, nil, logger)

	if err := ps.Save(context.Background(), progress.Zero(time.Now())); err != nil {
		t.Fatalf("save should succeed when only the prune fails: %v", err)
	}
	if repo.saved != 1 {
		t.Errorf("saved %d snapshots, want 1", repo.saved)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "database is locked") {
		t.Errorf("expected a warning with the prune error, got %q", out)
	}
}
