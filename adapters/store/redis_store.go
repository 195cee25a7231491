package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/ports"
)

// KeyPrefix is prepended to every refresh token key in Redis.
const KeyPrefix = "refreshToken:"

// DefaultRefreshTTL is how long a refresh token lives unless revoked.
const DefaultRefreshTTL = 7 * 24 * time.Hour

// RedisStore is a Redis implementation of the RefreshStore interface.
// Expiry is enforced entirely by Redis TTL eviction; no client-side
// locking is performed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	newToken func() string
}

// NewRedisStore creates a new Redis refresh token store. A non-positive
// ttl falls back to DefaultRefreshTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultRefreshTTL
	}

	return &RedisStore{
		client:   client,
		ttl:      ttl,
		newToken: func() string { return uuid.New().String() },
	}
}

// Create generates an opaque refresh token and binds it to subject. SET NX
// guards against ever overwriting another session's token; with random
// UUIDv4 tokens a collision indicates a broken random source.
func (s *RedisStore) Create(ctx context.Context, subject string) (string, error) {
	token := s.newToken()

	ok, err := s.client.SetNX(ctx, KeyPrefix+token, subject, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	if !ok {
		return "", core.ErrTokenCollision
	}

	return token, nil
}

// Validate resolves a refresh token to its subject. A missing key means
// the token is invalid or was evicted by TTL; any other failure is a
// store outage and is reported as such, never as an invalid token.
func (s *RedisStore) Validate(ctx context.Context, token string) (string, error) {
	subject, err := s.client.Get(ctx, KeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", core.ErrTokenInvalid
		}
		return "", fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return subject, nil
}

// Revoke deletes the token mapping. Deleting an absent key is a no-op.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, KeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}

var _ ports.RefreshStore = (*RedisStore)(nil)
