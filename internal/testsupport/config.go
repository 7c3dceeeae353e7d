package testsupport

import (
	"path/filepath"
	"testing"

	"picbox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StoreDir = filepath.Join(base, "store")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithPageSize overrides the listing page size on the test config.
func WithPageSize(size int) ConfigOption {
	return func(c *config.Config) {
		c.Catalog.PageSize = size
	}
}

// WithThumbnailMax overrides the thumbnail bounds on the test config.
func WithThumbnailMax(width, height int) ConfigOption {
	return func(c *config.Config) {
		c.Thumbnails.MaxWidth = width
		c.Thumbnails.MaxHeight = height
	}
}

// WithMissingCategoryPolicy overrides the upload missing-category policy.
func WithMissingCategoryPolicy(policy string) ConfigOption {
	return func(c *config.Config) {
		c.Catalog.MissingCategory = policy
	}
}
