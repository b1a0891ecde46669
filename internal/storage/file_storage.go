package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrFileNotFound is returned when a stored file cannot be located.
var ErrFileNotFound = errors.New("stored file not found")

// FileStorage stores uploaded files and hands back relative paths that are
// safe to persist. Store and Delete are best-effort with respect to the
// surrounding database write: a crash between the two can leave an orphaned
// file, which is accepted and cleaned up out of band.
type FileStorage interface {
	Store(subdir, filename string, r io.Reader) (string, error)
	Delete(relPath string) error
	Open(relPath string) (io.ReadCloser, error)
}

// LocalFileStorage keeps files on the local disk under a base directory.
type LocalFileStorage struct {
	baseDir string
}

// NewLocalFileStorage creates a LocalFileStorage rooted at baseDir, creating
// the directory if needed.
func NewLocalFileStorage(baseDir string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", baseDir, err)
	}
	return &LocalFileStorage{baseDir: baseDir}, nil
}

// Store writes the reader's content under subdir. The stored name is a uuid
// with the original extension, so uploads can never collide or traverse
// outside the base directory.
func (s *LocalFileStorage) Store(subdir, filename string, r io.Reader) (string, error) {
	cleanSubdir := filepath.Clean("/" + subdir)[1:] // strip any leading ../
	dir := filepath.Join(s.baseDir, cleanSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	stored := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	relPath := filepath.Join(cleanSubdir, stored)

	f, err := os.Create(filepath.Join(s.baseDir, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", relPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name()) // don't leave a half-written file behind
		return "", fmt.Errorf("failed to write file %s: %w", relPath, err)
	}
	return relPath, nil
}

// Delete removes a stored file. Deleting a file that is already gone is not
// an error.
func (s *LocalFileStorage) Delete(relPath string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.Clean("/"+relPath)[1:]))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", relPath, err)
	}
	return nil
}

// Open returns a reader over a stored file.
func (s *LocalFileStorage) Open(relPath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.baseDir, filepath.Clean("/"+relPath)[1:]))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file %s: %w", relPath, err)
	}
	return f, nil
}
