package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore keeps uploaded files under a root directory. Records refer to
// files by a slash-separated path relative to that root.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) (*MediaStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root %s: %w", root, err)
	}
	return &MediaStore{root: root}, nil
}

func (m *MediaStore) Root() string {
	return m.root
}

// Save writes content under dir with a fresh uuid name that keeps the
// original extension, and returns the relative path.
func (m *MediaStore) Save(dir, filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	rel := path.Join(dir, uuid.NewString()+ext)

	full := m.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("write media file %s: %w", rel, err)
	}
	return rel, nil
}

// Path resolves a relative media path to a filesystem path inside the root.
func (m *MediaStore) Path(rel string) string {
	clean := path.Clean("/" + rel)
	return filepath.Join(m.root, filepath.FromSlash(clean))
}

// Remove deletes a stored file; a missing file is not an error.
func (m *MediaStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	if err := os.Remove(m.Path(rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file %s: %w", rel, err)
	}
	return nil
}
