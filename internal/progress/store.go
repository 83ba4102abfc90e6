package progress

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCorrupt marks a progress record that could not be decoded or
	// failed validation.
	ErrCorrupt = errors.New("progress record is corrupt")

	// ErrUnsupportedVersion marks a progress record written by a newer build.
	ErrUnsupportedVersion = errors.New("progress record version is not supported")
)

// Store loads and saves the progress record.
//
// Load never fails outright: when the record is missing or unreadable it
// returns the zero state, plus a *PersistenceError when something was
// actually wrong with the stored data.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// PersistenceError reports a failure to read or write the progress record.
// The in-memory state stays authoritative when one is returned.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s progress: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s progress %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
