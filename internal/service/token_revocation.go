package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevokedTokenKeyPrefix prefixes the token id of every revoked session.
const RedisRevokedTokenKeyPrefix = "revoked_token:"

// Timeout for individual Redis operations
const redisOpTimeout = 2 * time.Second

// TokenRevocationStore remembers session token ids that were logged out
// before they expired.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenRevocationStore struct {
	redisClient *redis.Client
}

func NewRedisTokenRevocationStore(redisClient *redis.Client) TokenRevocationStore {
	return &redisTokenRevocationStore{redisClient: redisClient}
}

// Revoke stores the token id until the token would have expired anyway.
// Tokens already past expiry are not stored.
func (s *redisTokenRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.redisClient.Set(ctx, RedisRevokedTokenKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (s *redisTokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	n, err := s.redisClient.Exists(ctx, RedisRevokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token %s: %w", tokenID, err)
	}
	return n > 0, nil
}
