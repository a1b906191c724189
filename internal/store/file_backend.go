package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileBackend keeps each document in its own JSON file. The ledger and
// goals live in the data directory; the catalog and daily caches live in
// the cache directory.
type FileBackend struct {
	dataDir  string
	cacheDir string
}

// NewFileBackend creates both directories if they do not exist.
func NewFileBackend(dataDir, cacheDir string) (*FileBackend, error) {
	for _, dir := range []string{dataDir, cacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return &FileBackend{dataDir: dataDir, cacheDir: cacheDir}, nil
}

// Path returns the file backing a document.
func (b *FileBackend) Path(doc Document) string {
	switch doc {
	case DocCatalog:
		return filepath.Join(b.cacheDir, "catalog.json")
	case DocDaily:
		return filepath.Join(b.cacheDir, "daily.json")
	case DocGoals:
		return filepath.Join(b.dataDir, "goals.json")
	default:
		return filepath.Join(b.dataDir, string(doc)+".json")
	}
}

// Read returns the file contents, or nil if the file does not exist.
func (b *FileBackend) Read(_ context.Context, doc Document) ([]byte, error) {
	body, err := os.ReadFile(b.Path(doc))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Write replaces the file atomically: the body goes to a uniquely named
// temporary file in the same directory which is then renamed over the target.
func (b *FileBackend) Write(_ context.Context, doc Document, body []byte) error {
	path := b.Path(doc)
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := f.Write(body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (b *FileBackend) Close() error {
	return nil
}
