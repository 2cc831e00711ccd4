package memory

import (
	"context"
	"errors"
	"testing"

	"rentledger/internal/kv/core"
)

func TestMemoryStoreBasic(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "k1", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil || string(got) != "v2" {
		t.Fatalf("get: %q %v", got, err)
	}
	got[0] = 'x'
	again, _ := s.Get(ctx, "k1")
	if string(again) != "v2" {
		t.Fatalf("returned slice must be a copy, got %q", again)
	}
	if err := s.Remove(ctx, "k1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "k1"); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
}

func TestMemoryStoreSetManyAndKeys(t *testing.T) {
	s := New()
	ctx := context.Background()
	err := s.SetMany(ctx, []core.Entry{
		{Key: "app_b", Value: []byte("2")},
		{Key: "app_a", Value: []byte("1")},
		{Key: "other", Value: []byte("3")},
	})
	if err != nil {
		t.Fatalf("set many: %v", err)
	}
	keys, err := s.Keys(ctx, "app_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "app_a" || keys[1] != "app_b" {
		t.Fatalf("unexpected keys %v", keys)
	}
	all, _ := s.Keys(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 keys, got %v", all)
	}
}
