package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/mathjourney/internal/progress"
)

// keepSnapshots bounds the snapshot history kept by ProgressStore.
const keepSnapshots = 20

// ProgressStore keeps the progress record as the newest row of
// progress_snapshots. It implements progress.Store.
type ProgressStore struct {
	repo   SnapshotRepo
	now    func() time.Time
	logger *slog.Logger
}

// NewProgressStore returns a progress.Store on top of repo. A nil logger
// means slog.Default().
func NewProgressStore(repo SnapshotRepo, now func() time.Time, logger *slog.Logger) *ProgressStore {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressStore{repo: repo, now: now, logger: logger}
}

// Load returns the newest snapshot, or the zero state when there is none.
func (p *ProgressStore) Load(ctx context.Context) (progress.State, error) {
	snap, err := p.repo.Latest(ctx)
	if err != nil {
		return progress.Zero(p.now()), &progress.PersistenceError{Op: "load", Err: err}
	}
	if snap == nil {
		return progress.Zero(p.now()), nil
	}
	return snap.Data.Normalize(), nil
}

// Save appends a snapshot and prunes old ones. A failed prune is logged,
// not returned; the record itself was written.
func (p *ProgressStore) Save(ctx context.Context, st progress.State) error {
	snap := &Snapshot{Timestamp: p.now(), Data: st.Normalize()}
	if err := p.repo.Save(ctx, snap); err != nil {
		return &progress.PersistenceError{Op: "save", Err: err}
	}
	if err := p.repo.Prune(ctx, keepSnapshots); err != nil {
		p.logger.Warn("prune progress snapshots failed", "keep", keepSnapshots, "error", err)
	}
	return nil
}
