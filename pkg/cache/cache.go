// Package cache provides response caching for GitHub API calls.
//
// Three backends are available:
//   - FileCache: entries stored under the XDG cache directory, for CLI use
//   - RedisCache: shared cache for serve-mode deployments behind one rate limit
//   - NullCache: no-op, used with --no-cache and in tests
//
// Search responses are never cached across runs (results go stale within
// minutes); the cache holds slow-changing data such as repository
// descriptions fetched during enrichment.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface implemented by all cache backends.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
