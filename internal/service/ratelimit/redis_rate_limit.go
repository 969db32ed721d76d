package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRateLimitService implements a fixed-window counter per key in Redis
type RedisRateLimitService struct {
	client *redis.Client
}

// NewRedisRateLimitService creates a new Redis-backed rate limit service
func NewRedisRateLimitService(client *redis.Client) *RedisRateLimitService {
	return &RedisRateLimitService{client: client}
}

// CheckLimit records an attempt under the key and reports whether the
// window's allowance is still available. The window starts at the first
// attempt and resets when the key expires.
func (s *RedisRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= int64(limit), nil
}
