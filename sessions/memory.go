package sessions

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, ttl*2)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionId string, key string) ([]byte, bool, error) {
	v, found := s.cache.Get(storeKey(sessionId, key))
	if !found {
		return nil, false, nil
	}
	b := v.([]byte)
	out := make([]byte, len(b))
	copy(out, b)
	return out, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionId string, key string, value []byte) error {
	b := make([]byte, len(value))
	copy(b, value)
	s.cache.Set(storeKey(sessionId, key), b, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}
