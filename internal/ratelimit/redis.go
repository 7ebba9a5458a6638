package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "contact:ratelimit:"

// RedisStore keeps submission timestamps in Redis, for deployments that
// run more than one gateway instance behind a load balancer. Keys carry
// a TTL of twice the cool-down window so the keyspace stays bounded
// without an explicit expiry pass.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. window is the limiter's
// cool-down window; the stored keys expire at twice that.
func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: 2 * window}
}

// Get returns the recorded timestamp for key.
func (s *RedisStore) Get(ctx context.Context, key string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}

// Set records t for key with the store's TTL.
func (s *RedisStore) Set(ctx context.Context, key string, t time.Time) error {
	return s.client.Set(ctx, redisKeyPrefix+key, strconv.FormatInt(t.Unix(), 10), s.ttl).Err()
}
