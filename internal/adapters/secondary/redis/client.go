// Package redis implements the cache and idempotency store ports on Redis.
// Both stores degrade open: when Redis is unreachable, reads miss and writes
// are dropped so request handling keeps working without deduplication.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/config"
)

// NewClient dials Redis with the given settings. The connection is verified
// lazily; callers that need a hard failure should Ping.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping verifies the connection is usable.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
