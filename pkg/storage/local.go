package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore implements DocumentStore on the local filesystem.
type LocalStore struct {
	path string
}

// NewLocalStore creates a filesystem-backed document store. The parent
// directory is created if needed.
func NewLocalStore(path string) (*LocalStore, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &LocalStore{path: path}, nil
}

// Load reads the document, returning (nil, nil) when it does not exist yet.
func (s *LocalStore) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state document: %w", err)
	}
	return data, nil
}

// Save writes the document to a temp file and renames it into place, so a
// crash mid-write never leaves a truncated document.
func (s *LocalStore) Save(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace state document: %w", err)
	}
	return nil
}
