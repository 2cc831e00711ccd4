// Package kv re-exports the key-value abstractions and selects a backend.
package kv

import (
	"rentledger/internal/kv/core"
)

type (
	// Driver identifies a kv backend driver.
	Driver = core.Driver
	// Store is the interface for kv backends.
	Store = core.Store
	// Entry is a single key/value pair written by a batch.
	Entry = core.Entry
	// Batcher is implemented by backends able to write several keys atomically.
	Batcher = core.Batcher
)

const (
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverSQLite is the embedded SQLite driver.
	DriverSQLite = core.DriverSQLite
	// DriverPostgres is the PostgreSQL driver.
	DriverPostgres = core.DriverPostgres
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
)

// ErrNotFound is returned by Get when a key has never been written or was removed.
var ErrNotFound = core.ErrNotFound
