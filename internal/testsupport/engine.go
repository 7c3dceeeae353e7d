package testsupport

import (
	"testing"

	"picbox/internal/artifacts"
	"picbox/internal/catalog"
	"picbox/internal/config"
	"picbox/internal/logging"
)

// NewEngine wires a catalog engine against temp directories: a fresh store,
// an artifact manager, and a no-op logger. The config is returned so tests
// can inspect paths.
func NewEngine(t testing.TB, opts ...ConfigOption) (*catalog.Engine, *config.Config) {
	t.Helper()

	cfg := NewConfig(t, opts...)
	st := MustOpenStore(t, cfg)
	files, err := artifacts.NewManager(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new artifact manager: %v", err)
	}
	return catalog.New(cfg, st, files, logging.NewNop()), cfg
}
