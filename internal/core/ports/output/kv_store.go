package output

import (
	"context"
	"time"
)

// CacheStore is a TTL'd key-value cache. Implementations degrade open: a
// backend outage reads as a miss and writes are dropped with a warning.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// IdempotencyStore persists responses of completed mutating requests and
// short-lived in-flight locks keyed by request fingerprint.
type IdempotencyStore interface {
	// GetResponse returns a previously stored response for the fingerprint.
	GetResponse(ctx context.Context, userID, fingerprint string) ([]byte, bool)

	// StoreResponse caches a completed 2xx response.
	StoreResponse(ctx context.Context, userID, fingerprint string, response []byte, ttl time.Duration)

	// DropResponse removes a cached response (used when replay goes wrong).
	DropResponse(ctx context.Context, userID, fingerprint string)

	// AcquireLock takes the in-flight lock; false means a duplicate request is
	// already running.
	AcquireLock(ctx context.Context, userID, fingerprint string, ttl time.Duration) bool

	// ReleaseLock frees the in-flight lock.
	ReleaseLock(ctx context.Context, userID, fingerprint string)
}
