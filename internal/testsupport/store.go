package testsupport

import (
	"context"
	"testing"

	"subplot/internal/config"
	"subplot/internal/store"
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

// NewVideo inserts a video row for tests using the provided store.
func NewVideo(t testing.TB, st *store.Store, video *store.Video) *store.Video {
	t.Helper()

	inserted, err := st.InsertVideo(context.Background(), video)
	if err != nil {
		t.Fatalf("store.InsertVideo: %v", err)
	}
	return inserted
}
