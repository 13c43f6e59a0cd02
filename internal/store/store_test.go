package store

import (
	"errors"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Put("snapshot/octocat", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.Get("snapshot/octocat")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("got %q, want %q", got, `{"a":1}`)
	}
}

func TestFileStoreMiss(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := s.Get("snapshot/nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Put("k", []byte("first")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Put("k", []byte("second")); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("got %q, want last write to win", got)
	}
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Put("k", []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}

	// deleting a missing key is not an error
	if err := s.Delete("missing"); err != nil {
		t.Errorf("delete of missing key failed: %v", err)
	}
}

func TestFileStoreKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	for _, key := range []string{"snapshot/a", "snapshot/b"} {
		if err := s.Put(key, []byte("{}")); err != nil {
			t.Fatalf("put %s failed: %v", key, err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}

	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen["snapshot/a"] || !seen["snapshot/b"] {
		t.Errorf("keys = %v, want snapshot/a and snapshot/b", keys)
	}
}
