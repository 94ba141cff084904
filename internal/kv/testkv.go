package kv

import "testing"

// NewTestStore creates a fresh in-memory store for tests.
func NewTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	store, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() { store.Close() })

	return store
}
