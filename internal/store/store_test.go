package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathjourney/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database")
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	s.Close()

	// Reopening runs the migration again without changes.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s.Close()
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestTables(t *testing.T) {
	tables, err := Tables()
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	want := map[string][]string{
		snapshotsTable:   {"id", "sequence", "timestamp", "total_points", "data"},
		lessonEvents:     {"id", "sequence", "timestamp", "session_id", "lesson", "title", "action", "points", "total_points"},
		attemptEvents:    {"id", "sequence", "timestamp", "session_id", "lesson", "activity", "prompt", "expected", "given", "correct", "awarded"},
		llmRequestEvents: {"id", "sequence", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body"},
	}
	if len(tables) != len(want) {
		t.Fatalf("got %d tables, want %d", len(tables), len(want))
	}
	for _, tbl := range tables {
		cols, ok := want[tbl.Name]
		if !ok {
			t.Errorf("unexpected table %q", tbl.Name)
			continue
		}
		for _, c := range cols {
			if !tbl.HasColumn(c) {
				t.Errorf("table %s missing column %s", tbl.Name, c)
			}
		}
		if len(tbl.PrimaryKey) != 1 || tbl.PrimaryKey[0].Name != "id" {
			t.Errorf("table %s: primary key should be id", tbl.Name)
		}
	}
}

func TestSequenceIsShared(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	b, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if b != a+1 {
		t.Errorf("sequence %d then %d, want consecutive", a, b)
	}
}

func testState(total int) progress.State {
	st := progress.Zero(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	st.TotalPoints = total
	return st.Normalize()
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data:      testState(15),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.Data.TotalPoints != 15 {
		t.Errorf("data.totalPoints = %d, want 15", snap.Data.TotalPoints)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, &Snapshot{Data: testState(i + 1)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Data.TotalPoints != 3 {
		t.Errorf("data.totalPoints = %d, want 3", snap.Data.TotalPoints)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := repo.Save(ctx, &Snapshot{Data: testState(i)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	n, err := count(ctx, s.DB(), snapshotsTable)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Data.TotalPoints != 6 {
		t.Errorf("latest survived prune with total %d, want 6", snap.Data.TotalPoints)
	}

	// Pruning with room to spare is a no-op.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune: %v", err)
	}
}
