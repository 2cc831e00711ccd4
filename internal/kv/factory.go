package kv

import (
	"context"
	"fmt"

	"rentledger/internal/infra/kv/fs"
	"rentledger/internal/infra/kv/memory"
	"rentledger/internal/infra/kv/postgres"
	"rentledger/internal/infra/kv/s3"
	"rentledger/internal/infra/kv/sqlite"
)

// Options selects and configures a backend. Zero values fall back to each
// driver's defaults.
type Options struct {
	Driver      Driver
	FSRoot      string
	SQLitePath  string
	PostgresDSN string
	S3          s3.Config
}

// Open constructs the Store named by opts.Driver (default fs).
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return fs.New(opts.FSRoot)
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		return sqlite.NewStore(opts.SQLitePath)
	case DriverPostgres:
		return postgres.NewStore(ctx, opts.PostgresDSN)
	case DriverS3:
		return s3.New(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown kv driver %s", driver)
	}
}

// SetAll writes entries in one batch when the store supports it and falls
// back to sequential writes otherwise. The fallback stops at the first error.
func SetAll(ctx context.Context, store Store, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if b, ok := store.(Batcher); ok {
		return b.SetMany(ctx, entries)
	}
	for _, e := range entries {
		if err := store.Set(ctx, e.Key, e.Value); err != nil {
			return fmt.Errorf("set %s: %w", e.Key, err)
		}
	}
	return nil
}
