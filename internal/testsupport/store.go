package testsupport

import (
	"context"
	"testing"

	"crate/internal/catalog"
	"crate/internal/config"
	"crate/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewItem inserts a collection item for tests using the provided store.
func NewItem(t testing.TB, st *store.Store, artist, title string, media catalog.MediaType) *catalog.Item {
	t.Helper()

	return MustInsert(t, st, catalog.Item{
		Artist:    artist,
		Title:     title,
		MediaType: media,
		List:      catalog.ListCollection,
	})
}

// MustInsert stores item as-is and returns the stored copy.
func MustInsert(t testing.TB, st *store.Store, item catalog.Item) *catalog.Item {
	t.Helper()

	stored, err := st.Insert(context.Background(), item)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return stored
}
