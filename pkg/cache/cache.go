// Package cache stores rendered artifacts keyed by their inputs.
//
// Backends:
//   - [MemoryCache]: in-process, for the HTTP server
//   - [FileCache]: a directory of JSON entries, for the CLI
//   - [RedisCache]: shared between server instances
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes every input that
// influences the output, so a changed message list or option always misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Load is Get with a miss reported as [ErrCacheMiss].
func Load(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
