package strikes

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares strike counts across instances. Keys expire after the
// TTL, matching the in-memory behavior.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(studentKey string) string {
	return "debate:strikes:" + studentKey
}

func (s *RedisStore) Increment(ctx context.Context, studentKey string) (int, error) {
	key := s.key(studentKey)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment strikes: %w", err)
	}
	// Best-effort TTL refresh; a missing expiry only means a stale counter.
	s.client.Expire(ctx, key, s.ttl)
	return int(count), nil
}

func (s *RedisStore) Reset(ctx context.Context, studentKey string) error {
	if err := s.client.Del(ctx, s.key(studentKey)).Err(); err != nil {
		return fmt.Errorf("reset strikes: %w", err)
	}
	return nil
}
