package snapshot

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// ErrNotFound marks an absent snapshot. Absence is a recoverable condition:
// the loader degrades that source to an empty collection instead of failing
// the load.
var ErrNotFound = errors.New("snapshot not found")

// Source is where snapshots live. Implementations return ErrNotFound when
// the named snapshot does not exist at the location.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileSource reads snapshots from a data directory, the default layout the
// collectors write into.
type FileSource struct {
	root string
}

// NewFileSource creates a Source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{root: dir}
}

// Open opens the named snapshot file relative to the source root.
func (s *FileSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
