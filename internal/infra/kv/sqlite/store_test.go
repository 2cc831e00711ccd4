package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"rentledger/internal/kv/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.Get(ctx, "landlord_units"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "landlord_units", []byte(`[{"id":"u1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "landlord_units", []byte(`[{"id":"u1"},{"id":"u2"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, "landlord_units")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"u1"},{"id":"u2"}]` {
		t.Fatalf("unexpected payload %s", got)
	}
	if err := s.Remove(ctx, "landlord_units"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Get(ctx, "landlord_units"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestSQLiteStoreSetManyAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	entries := []core.Entry{
		{Key: "landlord_properties", Value: []byte(`[]`)},
		{Key: "landlord_leases", Value: []byte(`[{"id":"l1"}]`)},
		{Key: "other", Value: []byte(`{}`)},
	}
	if err := s.SetMany(ctx, entries); err != nil {
		t.Fatalf("set many: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	keys, err := reopened.Keys(ctx, "landlord_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "landlord_leases" || keys[1] != "landlord_properties" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if reopened.Path() != path || reopened.Driver() != core.DriverSQLite || reopened.DB() == nil {
		t.Fatalf("unexpected accessors")
	}
}

func TestSQLiteStoreSetManyCanceledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SetMany(ctx, []core.Entry{{Key: "k", Value: []byte("1")}}); err == nil {
		t.Fatalf("expected error for canceled context")
	}
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected nothing written, got %v", err)
	}
}
