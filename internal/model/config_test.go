package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "https://leetcode.com/graphql", cfg.API.URL)
	assert.Equal(t, 3, cfg.API.MaxAttempts)
	assert.Equal(t, 1, cfg.Catalog.FreshnessDays)
	assert.NotContains(t, cfg.Storage.DataDir, "~")
}

func TestLoadConfigReadsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: sqlite
  data_dir: /tmp/lct-data
api:
  max_attempts: 5
catalog:
  freshness_days: 3
`), 0o644))

	t.Setenv("LCTRACKER_API_URL", "http://localhost:9999/graphql")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/lct-data", cfg.Storage.DataDir)
	assert.Equal(t, 5, cfg.API.MaxAttempts)
	assert.Equal(t, 3, cfg.Catalog.FreshnessDays)
	assert.Equal(t, "http://localhost:9999/graphql", cfg.API.URL)
	assert.Equal(t, 30, cfg.API.TimeoutSec)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: postgres\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTripOmitsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Storage.DataDir = "/srv/data"
	cfg.API.Session = "secret-cookie"

	require.NoError(t, SaveConfig(path, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-cookie")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", loaded.Storage.DataDir)
	assert.Empty(t, loaded.API.Session)
}
