package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// StorageConfig controls where the tracker's documents live.
type StorageConfig struct {
	// Backend is "json" (one file per document) or "sqlite".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// DataDir holds the solved ledger and goal store.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// CacheDir holds the catalog and daily-selection caches.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// APIConfig holds settings for the remote catalog endpoint.
type APIConfig struct {
	URL          string `mapstructure:"url" yaml:"url"`
	TimeoutSec   int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	MaxAttempts  int    `mapstructure:"max_attempts" yaml:"max_attempts"`
	BackoffMs    int    `mapstructure:"backoff_ms" yaml:"backoff_ms"`
	MaxBackoffMs int    `mapstructure:"max_backoff_ms" yaml:"max_backoff_ms"`

	// Session is an optional LEETCODE_SESSION cookie. Usually supplied via
	// LCTRACKER_API_SESSION or the keyring rather than the file.
	Session string `mapstructure:"session" yaml:"session,omitempty"`
}

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Backoff returns the delay before the first retry.
func (c APIConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffMs) * time.Millisecond
}

// MaxBackoff returns the retry delay cap.
func (c APIConfig) MaxBackoff() time.Duration {
	return time.Duration(c.MaxBackoffMs) * time.Millisecond
}

// CatalogConfig controls catalog cache freshness.
type CatalogConfig struct {
	// FreshnessDays is how many calendar days a fetched catalog stays valid.
	// 1 means only the day it was fetched.
	FreshnessDays int `mapstructure:"freshness_days" yaml:"freshness_days"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// envPrefix namespaces environment overrides, e.g. LCTRACKER_STORAGE_BACKEND.
const envPrefix = "LCTRACKER"

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/lctracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "lctracker", "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend:  BackendJSON,
			DataDir:  "~/.local/share/leetcode_tracker",
			CacheDir: "~/.cache/leetcode_tracker",
		},
		API: APIConfig{
			URL:          "https://leetcode.com/graphql",
			TimeoutSec:   30,
			MaxAttempts:  3,
			BackoffMs:    1000,
			MaxBackoffMs: 8000,
		},
		Catalog: CatalogConfig{FreshnessDays: 1},
		Log:     LogConfig{Level: "warn", Format: "console"},
	}
}

// setDefaults mirrors DefaultAppConfig into v so missing keys resolve and
// environment overrides bind for every key.
func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.cache_dir", d.Storage.CacheDir)
	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.timeout_sec", d.API.TimeoutSec)
	v.SetDefault("api.max_attempts", d.API.MaxAttempts)
	v.SetDefault("api.backoff_ms", d.API.BackoffMs)
	v.SetDefault("api.max_backoff_ms", d.API.MaxBackoffMs)
	v.SetDefault("api.session", "")
	v.SetDefault("catalog.freshness_days", d.Catalog.FreshnessDays)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. Environment variables
// prefixed with LCTRACKER_ override both.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// normalize expands paths and clamps numeric settings to usable values.
func (c *AppConfig) normalize() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	c.Storage.DataDir = ExpandHome(c.Storage.DataDir)
	c.Storage.CacheDir = ExpandHome(c.Storage.CacheDir)

	if c.API.MaxAttempts < 1 {
		c.API.MaxAttempts = 1
	}
	if c.API.TimeoutSec <= 0 {
		c.API.TimeoutSec = 30
	}
	if c.API.BackoffMs < 0 {
		c.API.BackoffMs = 0
	}
	if c.API.MaxBackoffMs < c.API.BackoffMs {
		c.API.MaxBackoffMs = c.API.BackoffMs
	}
	if c.Catalog.FreshnessDays < 1 {
		c.Catalog.FreshnessDays = 1
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed. The session cookie is never written.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	api := cfg.API
	api.Session = ""

	v.Set("storage", cfg.Storage)
	v.Set("api", api)
	v.Set("catalog", cfg.Catalog)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
