// Package storage is the key-value persistence port for ghost records. The
// ghost store is written against the KV interface, so the game, the CLI and
// tests can pick a backend (memory, file, sqlite, redis) without touching
// record logic.
package storage

import "context"

// Backend names accepted by the CLI and config.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// KV is a flat byte-oriented key-value store.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get retrieves the stored value for a key.
	// Returns nil, nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value for a key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all keys starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases any resources held by the backend.
	Close() error
}
