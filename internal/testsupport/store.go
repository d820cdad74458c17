package testsupport

import (
	"context"
	"testing"

	"nordpatch/internal/config"
	"nordpatch/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// InsertEntry upserts an entry for tests using the provided store.
func InsertEntry(t testing.TB, store *library.Store, entry *library.Entry) *library.Entry {
	t.Helper()

	saved, err := store.Upsert(context.Background(), entry)
	if err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	return saved
}
