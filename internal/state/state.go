// Package state persists small snapshots as one file per key under a state
// directory. Every Put rewrites the whole file, so concurrent writers
// degrade to last-write-wins, which is acceptable for a single-user tool.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is a file-per-key snapshot store rooted at dir.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily on the
// first Put.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Get returns the snapshot stored under key, with ok=false when absent.
func (s *Store) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading state %s: %w", key, err)
	}
	return data, true, nil
}

// Put replaces the snapshot stored under key.
func (s *Store) Put(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing state %s: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot stored under key. Absent keys are a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting state %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".yaml")
}
