package store

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/model"
)

// Document names one of the whole documents the tracker persists.
type Document string

const (
	DocSolved  Document = "solved"
	DocGoals   Document = "goals"
	DocCatalog Document = "catalog"
	DocDaily   Document = "daily"
)

// Store defines whole-document persistence for the ledger, goals, and caches.
// Loads never fail on malformed content: a corrupt document reads as empty.
type Store interface {
	LoadSolved(ctx context.Context) ([]model.SolvedRecord, error)
	SaveSolved(ctx context.Context, records []model.SolvedRecord) error

	LoadGoals(ctx context.Context) ([]model.Goal, error)
	SaveGoals(ctx context.Context, goals []model.Goal) error

	// LoadCatalog returns nil when no usable catalog is cached.
	LoadCatalog(ctx context.Context) (*model.CatalogCache, error)
	SaveCatalog(ctx context.Context, cache model.CatalogCache) error

	LoadDaily(ctx context.Context) (model.DailyCache, error)
	SaveDaily(ctx context.Context, cache model.DailyCache) error

	Close() error
}

// Backend stores raw document bodies. Read returns (nil, nil) when the
// document has never been written.
type Backend interface {
	Read(ctx context.Context, doc Document) ([]byte, error)
	Write(ctx context.Context, doc Document, body []byte) error
	Close() error
}

// Open builds the Store selected by cfg.Backend.
func Open(cfg model.StorageConfig, logger *zap.Logger) (*DocumentStore, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Backend {
	case model.BackendSQLite:
		backend, err = NewSQLiteBackend(filepath.Join(cfg.DataDir, "tracker.db"))
	case model.BackendJSON, "":
		backend, err = NewFileBackend(cfg.DataDir, cfg.CacheDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return New(backend, logger), nil
}
