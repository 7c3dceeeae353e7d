package testsupport

import (
	"testing"

	"picbox/internal/config"
	"picbox/internal/store"
)

// MustOpenStore opens a catalog store against the test config and registers
// cleanup. Fails the test on any open error.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}
