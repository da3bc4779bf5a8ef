// Package redisstore implements the workflow snapshot store on Redis.
// Snapshots are plain string values with a TTL; Redis expiry is the
// mechanism behind snapshot expiration, no sweeper needed.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore implements SnapshotStore on a Redis client.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore creates a snapshot store over an existing client.
// The caller owns the client's lifecycle.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

// Set writes value under key with the given TTL, replacing any prior value.
func (s *RedisSnapshotStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Get reads the value under key. An absent or expired key reports found=false
// rather than an error; errors are reserved for transport failures, which the
// recovery service retries.
func (s *RedisSnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}
