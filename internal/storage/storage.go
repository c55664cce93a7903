package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// A Storage persists and retrieves media binaries.
// Records about the stored media (content type, metadata) live in the
// database, the storage only deals with the payload under its name.
type Storage interface {
	// Put saves the content under the given name and returns its size.
	// An existing name is left untouched.
	Put(name string, content io.Reader) (int64, error)
	// Get opens the content stored under the given name.
	Get(name string) (io.ReadCloser, error)
	// Delete removes the content stored under the given name.
	Delete(name string) error
	// Exists returns true if a content is already stored under the given name.
	Exists(name string) bool
}

type filesystem struct {
	root string
}

// NewFilesystem returns a Storage backed by a local directory.
func NewFilesystem(root string) (Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create storage directory")
	}
	return &filesystem{root: root}, nil
}

func (s *filesystem) Put(name string, content io.Reader) (int64, error) {
	if s.Exists(name) {
		f, err := os.Stat(s.path(name))
		if err != nil {
			return 0, errors.Wrap(err, "could not stat stored media")
		}
		return f.Size(), nil
	}

	f, err := os.Create(s.path(name))
	if err != nil {
		return 0, errors.Wrap(err, "could not create media file")
	}
	defer f.Close()

	n, err := io.Copy(f, content)
	return n, errors.Wrap(err, "could not write media file")
}

func (s *filesystem) Get(name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	return f, errors.Wrap(err, "could not open media file")
}

func (s *filesystem) Delete(name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "could not remove media file")
}

func (s *filesystem) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

func (s *filesystem) path(name string) string {
	// Names are UUIDs, filepath.Base defuses any remaining traversal attempt.
	return filepath.Join(s.root, filepath.Base(name))
}
