package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rentledger/internal/infra/kv/memory"
	"rentledger/internal/kv"
)

var errDiskFull = errors.New("disk full")

// faultyStore wraps the memory driver and fails selected calls. It hides
// SetMany so seeding goes through the sequential path.
type faultyStore struct {
	kv.Store
	mu         sync.Mutex
	failGet    map[string]bool
	failSet    map[string]bool
	failRemove bool
	sets       []string
}

func newFaultyStore() *faultyStore {
	return &faultyStore{Store: memory.New(), failGet: map[string]bool{}, failSet: map[string]bool{}}
}

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failGet[key]
	f.mu.Unlock()
	if fail {
		return nil, errDiskFull
	}
	return f.Store.Get(ctx, key)
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failSet[key]
	if !fail {
		f.sets = append(f.sets, key)
	}
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.Store.Set(ctx, key, value)
}

func (f *faultyStore) Remove(ctx context.Context, key string) error {
	if f.failRemove {
		return errDiskFull
	}
	return f.Store.Remove(ctx, key)
}

func fixedClock() Clock {
	return ClockFunc(func() time.Time { return time.Date(2024, time.October, 15, 9, 30, 0, 0, time.UTC) })
}

func sequentialIDs(prefix string) IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type logLine struct {
	level string
	msg   string
}

type captureLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (c *captureLogger) add(level, msg string) {
	c.mu.Lock()
	c.lines = append(c.lines, logLine{level: level, msg: msg})
	c.mu.Unlock()
}

func (c *captureLogger) Debug(msg string, _ ...any) { c.add("debug", msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.add("info", msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.add("warn", msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.add("error", msg) }

func (c *captureLogger) has(level, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.level == level && l.msg == msg {
			return true
		}
	}
	return false
}
