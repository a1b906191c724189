package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/nhle/leetcode-tracker/internal/store"
)

// NewTestStore creates a DocumentStore over an in-memory SQLite backend
// with all migrations applied. It automatically closes the store when the
// test completes.
func NewTestStore(t *testing.T) *store.DocumentStore {
	t.Helper()

	b, err := store.NewSQLiteBackend(":memory:")
	if err != nil {
		t.Fatalf("creating test backend: %v", err)
	}

	s := store.New(b, zaptest.NewLogger(t))
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewFileTestStore creates a DocumentStore over JSON files in a temporary
// directory and returns the backend so tests can inspect or corrupt files.
func NewFileTestStore(t *testing.T) (*store.DocumentStore, *store.FileBackend) {
	t.Helper()

	dir := t.TempDir()
	b, err := store.NewFileBackend(filepath.Join(dir, "data"), filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("creating file backend: %v", err)
	}

	return store.New(b, zaptest.NewLogger(t)), b
}
