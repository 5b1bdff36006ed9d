// Package storage implements the flat-file record stores backing the
// repositories. Each store owns one JSON document with a single root
// collection; every operation is a whole-file read or rewrite, with no
// locking. Concurrent writers race with last-write-wins semantics, which is
// acceptable for the single-operator design point.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	apperrors "meditracker/pkg/errors"
)

// Store persists one ordered collection of T under a single root key, e.g.
// {"medicines": [...]}.
type Store[T any] struct {
	path    string
	rootKey string
}

func New[T any](path, rootKey string) *Store[T] {
	return &Store[T]{path: path, rootKey: rootKey}
}

func (s *Store[T]) Path() string {
	return s.path
}

// Ensure creates the backing file with an empty collection if it does not
// exist, creating parent directories as needed. Idempotent.
func (s *Store[T]) Ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Storage(fmt.Errorf("create data dir: %w", err))
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return apperrors.Storage(fmt.Errorf("stat %s: %w", s.path, err))
	}
	return s.write(nil)
}

// Load ensures the file exists and parses the full collection into memory.
// A corrupt document propagates as a storage error.
func (s *Store[T]) Load() ([]T, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("read %s: %w", s.path, err))
	}
	doc := map[string][]T{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.Storage(fmt.Errorf("decode %s: %w", s.path, err))
	}
	items := doc[s.rootKey]
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save serializes the full collection back, overwriting the file.
func (s *Store[T]) Save(items []T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Storage(fmt.Errorf("create data dir: %w", err))
	}
	return s.write(items)
}

func (s *Store[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(map[string][]T{s.rootKey: items}, "", "  ")
	if err != nil {
		return apperrors.Storage(fmt.Errorf("encode %s: %w", s.path, err))
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return apperrors.Storage(fmt.Errorf("write %s: %w", s.path, err))
	}
	return nil
}
