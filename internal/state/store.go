// Package state persists small pieces of UI state as JSON files under the
// .vitrine directory.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps a value in memory and mirrors every change to a JSON file.
type Store[T any] struct {
	mu       sync.RWMutex
	data     T
	filepath string
	defaults T
}

// NewStore creates a store backed by path, loading it when it exists.
func NewStore[T any](path string, defaults T) *Store[T] {
	s := &Store[T]{
		filepath: path,
		defaults: defaults,
		data:     defaults,
	}
	s.load()
	return s
}

// Get returns the current state.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Set updates the state and persists to disk.
func (s *Store[T]) Set(data T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	return s.save()
}

// load reads the file. A missing or corrupt file leaves the defaults.
func (s *Store[T]) load() {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		return
	}
	var loaded T
	if err := json.Unmarshal(data, &loaded); err != nil {
		return
	}
	s.data = loaded
}

// save writes to a temp file, then renames it over the real one.
func (s *Store[T]) save() error {
	if err := os.MkdirAll(filepath.Dir(s.filepath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tempFile := s.filepath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, s.filepath); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Clear resets to defaults and removes the file.
func (s *Store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = s.defaults
	if err := os.Remove(s.filepath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", s.filepath, err)
	}
	return nil
}
