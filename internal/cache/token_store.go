package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationStore remembers logged-out token ids until the token would have
// expired on its own.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisTokenRevocationStore struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedisTokenRevocationStore(client redis.Cmdable) TokenRevocationStore {
	return &RedisTokenRevocationStore{
		client: client,
		now:    time.Now,
	}
}

func (s *RedisTokenRevocationStore) key(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}

func (s *RedisTokenRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return s.client.Set(ctx, s.key(tokenID), "1", ttl).Err()
}

func (s *RedisTokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
