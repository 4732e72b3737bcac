// Package storage defines the persistence port for the game state snapshot.
package storage

import (
	"context"
	"errors"
	"path/filepath"
)

// ErrNotFound indicates no snapshot has been saved yet.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore reads and writes the encoded game state as one blob.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Backend names a SnapshotStore implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendBolt   Backend = "bbolt"
	BackendSQLite Backend = "sqlite"
)

// DefaultPath is the state location used when none is configured. Database
// backends get their own file so they never open a JSON snapshot.
func (b Backend) DefaultPath() string {
	switch b {
	case BackendBolt, BackendSQLite:
		return filepath.Join("data", "state.db")
	default:
		return filepath.Join("data", "state.json")
	}
}
