package strikes

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps strike counts in-process. Entries expire after the TTL
// so an abandoned session doesn't pin its strikes forever.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *MemoryStore) Increment(_ context.Context, studentKey string) (int, error) {
	// go-cache's IncrementInt errors on missing keys, so guard the
	// read-modify-write with our own lock instead.
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 1
	if x, found := s.cache.Get(studentKey); found {
		count = x.(int) + 1
	}
	s.cache.Set(studentKey, count, cache.DefaultExpiration)
	return count, nil
}

func (s *MemoryStore) Reset(_ context.Context, studentKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(studentKey)
	return nil
}
