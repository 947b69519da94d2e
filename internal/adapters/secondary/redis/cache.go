package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

type cacheStore struct {
	client *redis.Client
}

func NewCacheStore(client *redis.Client) ports.CacheStore {
	return &cacheStore{client: client}
}

func (c *cacheStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("key", key).Warn("cache lookup failed")
		}
		return nil, false
	}
	return val, true
}

func (c *cacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (c *cacheStore) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache delete failed")
	}
}
