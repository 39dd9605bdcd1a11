package port

import (
	"context"
	"time"
)

// Cache defines the minimal contract for a key-value cache used by the application.
// Implementations must be concurrency-safe and honor ctx for timeouts/cancellation.
// Values are strings; callers own their serialization.
type Cache interface {
	// Get fetches the value for key. Misses are reported as ("", ErrMiss).
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL means
	// no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns the number of keys removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Incr atomically increments the counter at key and returns the new value.
	// The TTL is applied when the counter is created, so a window starts at the
	// first hit and is not extended by later ones.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Ping verifies connectivity with the cache backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss so callers can tell it apart from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
