package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps the progress record as a JSON file.
type FileStore struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithClock sets the time source used for the zero state.
func WithClock(now func() time.Time) FileOption {
	return func(s *FileStore) { s.now = now }
}

// WithLogger sets the logger used for recovery warnings.
func WithLogger(l *slog.Logger) FileOption {
	return func(s *FileStore) { s.logger = l }
}

// NewFileStore returns a store for the JSON file at path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{
		path:   path,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the record. A missing file yields the zero state and no error.
// An unreadable or invalid file yields the zero state and a
// *PersistenceError; the file is moved to <path>.corrupt so a later save
// does not overwrite it.
func (s *FileStore) Load(ctx context.Context) (State, error) {
	zero := Zero(s.now())

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return zero, nil
	}
	if err != nil {
		return zero, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	st, err := decodeRecord(raw)
	if err != nil {
		s.quarantine()
		return zero, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return st, nil
}

// Save writes the record atomically: a temp file in the same directory is
// written and renamed over the previous record.
func (s *FileStore) Save(ctx context.Context, st State) error {
	data, err := json.MarshalIndent(st.Normalize(), "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := writeAtomic(s.path, append(data, '\n')); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *FileStore) quarantine() {
	dst := s.path + ".corrupt"
	if err := os.Rename(s.path, dst); err != nil {
		s.logger.Warn("could not move corrupt progress file aside", "path", s.path, "error", err)
		return
	}
	s.logger.Warn("corrupt progress file moved aside", "path", s.path, "moved_to", dst)
}

// decodeRecord validates and decodes a stored record.
func decodeRecord(raw []byte) (State, error) {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if head.Version > CurrentVersion {
		return State{}, fmt.Errorf("%w: found %d, support up to %d",
			ErrUnsupportedVersion, head.Version, CurrentVersion)
	}

	if err := validateRecord(raw); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return st.Normalize(), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// DefaultPath resolves the progress file location:
// $XDG_DATA_HOME/mathjourney/progress.json, falling back to
// ~/.local/share/mathjourney/progress.json.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mathjourney", "progress.json"), nil
}
