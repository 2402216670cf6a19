package cache

import "context"

// Cache is a byte-oriented cache of whole blobs keyed by name.
type Cache interface {
	// Get returns a cached blob. ok=false if missing.
	Get(ctx context.Context, key string) (b []byte, ok bool)
	// Set caches a blob. Implementations may retain b; callers must not mutate it.
	Set(ctx context.Context, key string, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key string) bool)
	// Close releases any resources.
	Close() error
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
}
