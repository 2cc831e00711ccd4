package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"rentledger/internal/kv"
)

// collection holds one in-memory list of records. Callers guard it with the
// owning store's mutex.
type collection[T any] struct {
	key   string
	items []T
	id    func(T) string
}

func newCollection[T any](key string, id func(T) string) collection[T] {
	return collection[T]{key: key, id: id}
}

func (c *collection[T]) add(item T) []T {
	c.items = append(c.items, item)
	return slices.Clone(c.items)
}

func (c *collection[T]) drop(id string) {
	c.items = slices.DeleteFunc(c.items, func(v T) bool { return c.id(v) == id })
}

func (c *collection[T]) snapshot() []T {
	return slices.Clone(c.items)
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	var out []T
	for _, v := range c.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (c *collection[T]) first(match func(T) bool) (T, bool) {
	for _, v := range c.items {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) replace(items []T) {
	c.items = items
}

// appendRecord adds item under mu, then persists a copy of the whole
// collection outside the lock. A failed write removes item again so memory
// matches what was last persisted. Concurrent appends race last-write-wins.
func appendRecord[T any](ctx context.Context, o *options, store kv.Store, mu *sync.RWMutex, c *collection[T], item T) error {
	mu.Lock()
	snapshot := c.add(item)
	mu.Unlock()
	if err := writeJSON(ctx, store, c.key, snapshot); err != nil {
		mu.Lock()
		c.drop(c.id(item))
		mu.Unlock()
		o.logger.Error("persist collection", "key", c.key, "error", err)
		return err
	}
	o.logger.Debug("record added", "key", c.key, "id", c.id(item), "count", len(snapshot))
	return nil
}

func readCollection[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func writeJSON(ctx context.Context, store kv.Store, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func entry(key string, v any) (kv.Entry, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return kv.Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Entry{Key: key, Value: payload}, nil
}
