package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore persists each document as one JSON file inside a profile
// directory. It is the default backend and the closest analog to the
// browser-profile storage the system was designed around.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed. Pass afero.NewMemMapFs() in tests.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Read returns the document stored for key, or ErrKeyNotFound.
func (f *FileStore) Read(_ context.Context, key string) ([]byte, error) {
	doc, err := afero.ReadFile(f.fs, f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read document %q: %w", key, err)
	}
	return doc, nil
}

// Write replaces the document stored for key.
func (f *FileStore) Write(_ context.Context, key string, doc []byte) error {
	if err := afero.WriteFile(f.fs, f.path(key), doc, 0o644); err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}
	return nil
}

// Delete removes the document for key. Deleting an absent key is not an error.
func (f *FileStore) Delete(_ context.Context, key string) error {
	if err := f.fs.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; the file backend holds no connection.
func (f *FileStore) Close() error {
	return nil
}
