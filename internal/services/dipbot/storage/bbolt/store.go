// Package bbolt stores the game state snapshot in a BoltDB file.
package bbolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/dipbot/internal/services/dipbot/storage"
	"go.etcd.io/bbolt"
)

const (
	gameBucket = "game"
	stateKey   = "state"
)

// Store provides a BoltDB-backed snapshot store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists the snapshot.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(gameBucket))
		if bucket == nil {
			return fmt.Errorf("game bucket is missing")
		}
		return bucket.Put([]byte(stateKey), data)
	})
}

// Load fetches the snapshot.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(gameBucket))
		if bucket == nil {
			return fmt.Errorf("game bucket is missing")
		}
		payload := bucket.Get([]byte(stateKey))
		if payload == nil {
			return storage.ErrNotFound
		}
		// Bolt memory is only valid inside the transaction.
		data = append([]byte(nil), payload...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(gameBucket)); err != nil {
			return fmt.Errorf("create game bucket: %w", err)
		}
		return nil
	})
}
