// Package assets stores uploaded profile images on the local filesystem
// under random, collision-free names.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded files into a base directory.
type Store struct {
	dir string
}

// NewStore creates the base directory if needed.
func NewStore(dir string) (*Store, error) {
	const op = "assets.NewStore"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{dir: dir}, nil
}

// Save persists the content under a uuid-based name, keeping the original
// extension, and returns the stored path.
func (s *Store) Save(originalName string, content io.Reader) (string, error) {
	const op = "assets.Save"

	name := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err = io.Copy(f, content); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}
