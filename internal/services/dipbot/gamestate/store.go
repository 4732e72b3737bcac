// Package gamestate owns the single active game state and its persistence.
package gamestate

import (
	"context"
	"errors"
	"log"

	"github.com/louisbranch/dipbot/internal/platform/timeouts"
	"github.com/louisbranch/dipbot/internal/services/dipbot/domain"
	"github.com/louisbranch/dipbot/internal/services/dipbot/storage"
)

// Store holds the in-memory state and writes it through to a snapshot store.
// It does not lock; callers serialize access.
type Store struct {
	snapshots storage.SnapshotStore
	state     *domain.State
	logf      func(format string, args ...any)
}

// New creates a store with the default state. Call Load to read persisted
// state.
func New(snapshots storage.SnapshotStore) *Store {
	return &Store{
		snapshots: snapshots,
		state:     domain.NewState(),
		logf:      log.Printf,
	}
}

// State returns the live state. The pointer stays the same across Load and
// Reset.
func (s *Store) State() *domain.State {
	return s.state
}

// Load replaces the in-memory state with the persisted snapshot. A missing
// snapshot yields the default state; fields that fail to decode keep their
// defaults. Load never fails.
func (s *Store) Load(ctx context.Context) {
	data, err := s.snapshots.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.state.Reset()
		return
	}
	if err != nil {
		s.logf("load state: %v; starting from defaults", err)
		s.state.Reset()
		return
	}
	loaded, err := domain.Decode(data)
	if err != nil {
		s.logf("load state: %v; affected fields reset to defaults", err)
	}
	*s.state = *loaded
}

// Save writes the full state. Failures are logged and not returned; the
// in-memory state stays authoritative.
func (s *Store) Save(ctx context.Context) {
	data, err := domain.Encode(s.state)
	if err != nil {
		s.logf("save state: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.StorageWrite)
	defer cancel()
	if err := s.snapshots.Save(ctx, data); err != nil {
		s.logf("save state: %v", err)
	}
}
