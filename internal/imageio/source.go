package imageio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source is a user-selected file. The loader owns it from the moment it is
// passed to Load and closes it exactly once.
type Source interface {
	io.ReadCloser
	Name() string
}

type namedSource struct {
	io.ReadCloser
	name string
}

func (s *namedSource) Name() string { return s.name }

// NewSource wraps rc with a display name.
func NewSource(name string, rc io.ReadCloser) Source {
	return &namedSource{ReadCloser: rc, name: name}
}

// BytesSource serves data from memory.
func BytesSource(name string, data []byte) Source {
	return NewSource(name, io.NopCloser(bytes.NewReader(data)))
}

// OpenFile opens path as a Source named after its base name.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return NewSource(filepath.Base(path), f), nil
}
