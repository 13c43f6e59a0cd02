// Package testutil holds shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/vanschouwen/streakline/internal/store"
)

// NewStore returns a file store rooted in a per-test temp directory.
func NewStore(t *testing.T) *store.FileStore {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}
