package storage

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"
)

// MockFileStorage is an in-memory implementation of FileStorage.
type MockFileStorage struct {
	files map[string][]byte
	mu    sync.RWMutex
}

// NewMockFileStorage creates a new instance of MockFileStorage.
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{
		files: make(map[string][]byte),
	}
}

// Store keeps the content in memory under a generated path.
func (s *MockFileStorage) Store(subdir, filename string, r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	relPath := path.Join(subdir, uuid.New().String()+path.Ext(filename))
	s.files[relPath] = content
	return relPath, nil
}

// Delete removes a stored file.
func (s *MockFileStorage) Delete(relPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, relPath)
	return nil
}

// Open returns a reader over a stored file.
func (s *MockFileStorage) Open(relPath string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[relPath]
	if !ok {
		return nil, ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Count reports how many files are stored; used by tests to check cleanup.
func (s *MockFileStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Has reports whether a path is stored; used by tests.
func (s *MockFileStorage) Has(relPath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[relPath]
	return ok
}
