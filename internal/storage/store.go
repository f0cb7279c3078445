package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Keys the board persists under
const (
	KeyNotes          = "noter-notes"
	KeyDarkMode       = "noter-dark-mode"
	KeySwimlanesCount = "noter-swimlanes-count"
	KeySwimlaneLabels = "noter-swimlane-labels"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is a small string key/value store, the local equivalent of a
// browser's localStorage
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open opens the named backend inside dir
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(filepath.Join(dir, "noter.json"))
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "noter.db"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
