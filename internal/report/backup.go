package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"rentledger/internal/kv"
)

// BackupVersion is the document format written by Backup.
const BackupVersion = 1

// Document is the JSON backup of every key under a namespace. Values are
// kept verbatim.
type Document struct {
	Version   int                        `json:"version"`
	Namespace string                     `json:"namespace"`
	CreatedAt time.Time                  `json:"createdAt"`
	Entries   map[string]json.RawMessage `json:"entries"`
}

// Backup writes every key under namespace to w as an indented Document.
func Backup(ctx context.Context, store kv.Store, namespace string, now time.Time, w io.Writer) (int, error) {
	keys, err := store.Keys(ctx, namespace)
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}
	doc := Document{Version: BackupVersion, Namespace: namespace, CreatedAt: now.UTC(), Entries: make(map[string]json.RawMessage, len(keys))}
	for _, key := range keys {
		raw, err := store.Get(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", key, err)
		}
		if !json.Valid(raw) {
			return 0, fmt.Errorf("read %s: stored value is not json", key)
		}
		doc.Entries[key] = raw
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode backup: %w", err)
	}
	return len(keys), nil
}

// Restore reads a Document from r and writes its entries in one batch. Keys
// outside the document's namespace are rejected before anything is written.
// Restore only overwrites: stored keys missing from the document are kept.
func Restore(ctx context.Context, store kv.Store, r io.Reader) (int, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode backup: %w", err)
	}
	if doc.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %d", doc.Version)
	}
	keys := make([]string, 0, len(doc.Entries))
	for key := range doc.Entries {
		if !strings.HasPrefix(key, doc.Namespace) {
			return 0, fmt.Errorf("key %s outside namespace %q", key, doc.Namespace)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]kv.Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, kv.Entry{Key: key, Value: []byte(doc.Entries[key])})
	}
	if err := kv.SetAll(ctx, store, entries); err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}
	return len(entries), nil
}
