package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tracker.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorePutGetOverwrite(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, KeyPreferences, []byte(`{"minMatchScore":40}`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	data, ok, err := store.Get(ctx, KeyPreferences)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatalf("expected record to exist")
	}
	if string(data) != `{"minMatchScore":40}` {
		t.Fatalf("unexpected payload: %s", data)
	}

	// Second put on the same key replaces the record wholesale.
	if err := store.Put(ctx, KeyPreferences, []byte(`{"minMatchScore":70}`)); err != nil {
		t.Fatalf("Put overwrite error: %v", err)
	}
	data, ok, err = store.Get(ctx, KeyPreferences)
	if err != nil || !ok {
		t.Fatalf("Get after overwrite: ok=%v err=%v", ok, err)
	}
	if string(data) != `{"minMatchScore":70}` {
		t.Fatalf("expected overwritten payload, got %s", data)
	}
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, ok, err := store.Get(context.Background(), DigestKey("2024-06-01"))
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Fatalf("expected missing record")
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, KeySavedJobIDs, []byte(`["a"]`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Delete(ctx, KeySavedJobIDs); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, ok, err := store.Get(ctx, KeySavedJobIDs)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok {
		t.Fatalf("expected record gone after delete")
	}

	// Deleting a missing key is a silent no-op.
	if err := store.Delete(ctx, "nope"); err != nil {
		t.Fatalf("Delete missing error: %v", err)
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, DigestKey("2024-06-01"), []byte(`{"date":"2024-06-01"}`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := store.Put(ctx, DigestKey("2024-06-02"), []byte(`{"date":"2024-06-02"}`)); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	data, ok, err := store.Get(ctx, DigestKey("2024-06-01"))
	if err != nil || !ok {
		t.Fatalf("Get first day: ok=%v err=%v", ok, err)
	}
	if string(data) != `{"date":"2024-06-01"}` {
		t.Fatalf("cross-date contamination: %s", data)
	}
}
