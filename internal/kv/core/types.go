// Package core defines the key-value persistence abstraction shared by the
// storage drivers and the stores built on top of them.
package core

import (
	"context"
	"errors"
)

// Driver identifies a concrete key-value backend implementation.
type Driver string

const (
	// DriverMemory represents an in-memory implementation typically used in tests.
	DriverMemory Driver = "memory" // in-memory (tests)
	// DriverFilesystem represents one file per key under a local directory.
	DriverFilesystem Driver = "fs" // local filesystem (default, dev)
	// DriverSQLite represents an embedded sqlite database file.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres represents a PostgreSQL server.
	DriverPostgres Driver = "postgres"
	// DriverS3 represents an S3 / MinIO compatible implementation.
	DriverS3 Driver = "s3" // S3 / MinIO compatible
)

// Store persists whole values under string keys. Values are opaque to the
// store; callers write complete serialized collections.
type Store interface {
	// Get returns the value stored at key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value stored at key.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists stored keys with the given prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Driver() Driver
	Close() error
}

// Entry is a single key/value pair written by a batch.
type Entry struct {
	Key   string
	Value []byte
}

// Batcher is implemented by stores able to apply several writes atomically.
type Batcher interface {
	SetMany(ctx context.Context, entries []Entry) error
}

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("kv: key not found")
