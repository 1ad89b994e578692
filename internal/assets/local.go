package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is the route prefix under which locally stored images are
// served back.
const URLPrefix = "/uploads"

var localAllowedTypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// LocalStore writes images into a managed directory on disk. References
// have the form /uploads/<filename> and are served statically by the router.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(filename, contentType string, data []byte) (string, error) {
	if !localAllowedTypes[strings.ToLower(contentType)] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}

	// Timestamp plus the original extension keeps names collision-resistant
	// without tracking any state.
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return URLPrefix + "/" + name, nil
}

func (s *LocalStore) Release(ref string) error {
	if !strings.HasPrefix(ref, URLPrefix+"/") {
		// Reference was not produced by this store; nothing to delete.
		return nil
	}
	name := strings.TrimPrefix(ref, URLPrefix+"/")

	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// Dir returns the managed directory, used by the router to serve files.
func (s *LocalStore) Dir() string {
	return s.dir
}
