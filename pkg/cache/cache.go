// Package cache stores rendered artifacts and transforms between runs.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON entry per key under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance API servers
//
// All backends are safe for concurrent use.
//
// # Keys
//
// Keys are built by a [Keyer] from a hash of the layout content and the
// render parameters, so editing a layout or changing any option never
// serves a stale image. [ScopedKeyer] prefixes keys to share one Redis
// between deployments.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored data and true on a hit. A miss is not an
	// error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default TTLs.
const (
	// TTLArtifact is how long encoded images are kept.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLTransform is how long computed transforms are kept.
	TTLTransform = 7 * 24 * time.Hour
)
