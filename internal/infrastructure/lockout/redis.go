package lockout

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KothuriSowmya/blood-donation-backend/internal/application/ports"
)

// RedisStore is a LoginLockoutStore backed by redis so the failure counter is
// shared across instances. Counters expire with the cooldown window.
type RedisStore struct {
	client   *redis.Client
	max      int
	cooldown time.Duration
}

// NewRedisStore returns a redis-backed lockout store. maxAttempts 0 = disabled.
func NewRedisStore(client *redis.Client, maxAttempts, cooldownSeconds int) *RedisStore {
	cd := time.Duration(cooldownSeconds) * time.Second
	if cd <= 0 {
		cd = 15 * time.Minute
	}
	return &RedisStore{client: client, max: maxAttempts, cooldown: cd}
}

func (s *RedisStore) key(email string) string {
	return "lockout:" + email
}

func (s *RedisStore) IsLocked(ctx context.Context, email string) (locked bool, retryAfterSeconds int) {
	if s.max <= 0 {
		return false, 0
	}
	n, err := s.client.Get(ctx, s.key(email)).Int()
	if err != nil || n < s.max {
		// Redis being unreachable fails open: login proceeds to the
		// credential check rather than locking everyone out.
		return false, 0
	}
	ttl, err := s.client.TTL(ctx, s.key(email)).Result()
	if err != nil || ttl <= 0 {
		return true, 1
	}
	return true, int(ttl.Seconds())
}

func (s *RedisStore) RecordFailure(ctx context.Context, email string) {
	if s.max <= 0 {
		return
	}
	k := s.key(email)
	n, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return
	}
	if n == 1 || n == int64(s.max) {
		s.client.Expire(ctx, k, s.cooldown)
	}
}

func (s *RedisStore) RecordSuccess(ctx context.Context, email string) {
	if s.max <= 0 {
		return
	}
	s.client.Del(ctx, s.key(email))
}

var _ ports.LoginLockoutStore = (*RedisStore)(nil)
