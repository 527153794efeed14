// Package config provides configuration types and defaults for plenum.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"

	"github.com/zjrosen/plenum/internal/log"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/paths"
	"github.com/zjrosen/plenum/internal/tracing"
)

// Config holds all configuration options for plenum.
type Config struct {
	// Locale selects the display-name translations, e.g. "de".
	Locale       string         `mapstructure:"locale"`
	SnapshotPath string         `mapstructure:"snapshot_path"`
	AutoReload   bool           `mapstructure:"auto_reload"`
	Cache        CacheConfig    `mapstructure:"cache"`
	Search       SearchConfig   `mapstructure:"search"`
	Tracing      tracing.Config `mapstructure:"tracing"`
}

// CacheConfig controls how long built views are kept.
type CacheConfig struct {
	Expiration      time.Duration `mapstructure:"expiration"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Disabled        bool          `mapstructure:"disabled"`
}

// SearchModelConfig places one collection in the search catalog.
type SearchModelConfig struct {
	Collection   string `mapstructure:"collection"`
	DisplayOrder int    `mapstructure:"display_order"`
	Hidden       bool   `mapstructure:"hidden"`
}

// SearchConfig lists the searchable collections.
type SearchConfig struct {
	Models []SearchModelConfig `mapstructure:"models"`
}

// Enabled returns the models that are not hidden.
func (s SearchConfig) Enabled() []SearchModelConfig {
	out := make([]SearchModelConfig, 0, len(s.Models))
	for _, m := range s.Models {
		if !m.Hidden {
			out = append(out, m)
		}
	}
	return out
}

// DefaultSearchModels returns every collection in its default display order.
func DefaultSearchModels() []SearchModelConfig {
	return []SearchModelConfig{
		{Collection: models.CollectionMotion, DisplayOrder: 1},
		{Collection: models.CollectionAssignment, DisplayOrder: 2},
		{Collection: models.CollectionUser, DisplayOrder: 3},
		{Collection: models.CollectionItem, DisplayOrder: 4},
		{Collection: models.CollectionCategory, DisplayOrder: 5},
		{Collection: models.CollectionTag, DisplayOrder: 6},
	}
}

// DefaultSnapshotPath returns ~/.plenum/snapshot.db, or a relative path when
// the home directory is unknown.
func DefaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".plenum", paths.SnapshotFile)
	}
	return filepath.Join(home, ".plenum", paths.SnapshotFile)
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Locale:       "en",
		SnapshotPath: DefaultSnapshotPath(),
		AutoReload:   true,
		Cache: CacheConfig{
			Expiration:      5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Search:  SearchConfig{Models: DefaultSearchModels()},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("locale %q is not a valid language tag: %w", c.Locale, err)
		}
	}
	if c.Cache.Expiration < 0 {
		return fmt.Errorf("cache.expiration must not be negative, got %s", c.Cache.Expiration)
	}
	if err := ValidateSearch(c.Search); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateSearch checks the search catalog configuration.
func ValidateSearch(search SearchConfig) error {
	known := make(map[string]bool)
	for _, c := range models.Collections() {
		known[c] = true
	}
	seen := make(map[string]bool)
	for i, m := range search.Models {
		if m.Collection == "" {
			return fmt.Errorf("search.models[%d]: collection is required", i)
		}
		if !known[m.Collection] {
			return fmt.Errorf("search.models[%d]: unknown collection %q", i, m.Collection)
		}
		if seen[m.Collection] {
			return fmt.Errorf("search.models[%d]: duplicate collection %q", i, m.Collection)
		}
		seen[m.Collection] = true
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}

	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Plenum Configuration

# Display language for record type names (en, de, fr)
locale: en

# Local snapshot of the record replica (default: ~/.plenum/snapshot.db)
# snapshot_path: /path/to/snapshot.db

# Reload the replica when another process rewrites the snapshot
auto_reload: true

# Built view objects are cached until a record they show changes
cache:
  expiration: 5m
  cleanup_interval: 10m
  disabled: false

# Searchable collections, shown in ascending display_order.
# Set hidden: true to leave a collection out of search.
search:
  models:
    - collection: motions/motion
      display_order: 1
    - collection: assignments/assignment
      display_order: 2
    - collection: users/user
      display_order: 3
    - collection: agenda/item
      display_order: 4
    - collection: motions/category
      display_order: 5
    - collection: core/tag
      display_order: 6

# OpenTelemetry tracing (disabled by default)
# tracing:
#   enabled: true
#   exporter: file          # none, file, stdout, otlp
#   file_path: ~/.plenum/traces.json
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
