package ports

import (
	"context"
	"time"
)

// KVCache is the boundary for caching raw provider responses.
// Implementations must be safe for concurrent use.
type KVCache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with a time-to-live. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
