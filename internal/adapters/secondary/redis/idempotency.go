package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

const idempotencyKeyPrefix = "idem"

type idempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) ports.IdempotencyStore {
	return &idempotencyStore{client: client}
}

func responseKey(userID, fingerprint string) string {
	return fmt.Sprintf("%s:%s:%s", idempotencyKeyPrefix, userID, fingerprint)
}

func lockKey(userID, fingerprint string) string {
	return fmt.Sprintf("%s:lock:%s:%s", idempotencyKeyPrefix, userID, fingerprint)
}

func (s *idempotencyStore) GetResponse(ctx context.Context, userID, fingerprint string) ([]byte, bool) {
	val, err := s.client.Get(ctx, responseKey(userID, fingerprint)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("idempotency lookup failed")
		}
		return nil, false
	}
	return val, true
}

func (s *idempotencyStore) StoreResponse(ctx context.Context, userID, fingerprint string, response []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, responseKey(userID, fingerprint), response, ttl).Err(); err != nil {
		log.WithError(err).Warn("idempotency cache failed")
	}
}

func (s *idempotencyStore) DropResponse(ctx context.Context, userID, fingerprint string) {
	if err := s.client.Del(ctx, responseKey(userID, fingerprint)).Err(); err != nil {
		log.WithError(err).Warn("idempotency delete failed")
	}
}

// AcquireLock uses SET NX so only one in-flight request holds the fingerprint.
// A Redis outage reports the lock as acquired so requests still go through.
func (s *idempotencyStore) AcquireLock(ctx context.Context, userID, fingerprint string, ttl time.Duration) bool {
	acquired, err := s.client.SetNX(ctx, lockKey(userID, fingerprint), "1", ttl).Result()
	if err != nil {
		log.WithError(err).Warn("idempotency lock acquisition failed")
		return true
	}
	return acquired
}

func (s *idempotencyStore) ReleaseLock(ctx context.Context, userID, fingerprint string) {
	if err := s.client.Del(ctx, lockKey(userID, fingerprint)).Err(); err != nil {
		log.WithError(err).Warn("idempotency lock release failed")
	}
}
