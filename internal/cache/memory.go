package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore creates a MemoryStore whose entries default to ttl and are
// swept every cleanup interval.
func NewMemoryStore(ttl, cleanup time.Duration) *MemoryStore {
	return &MemoryStore{c: gocache.New(ttl, cleanup)}
}

// Get returns a copy of the stored value.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), b...), nil
}

// Set stores a copy of value. A zero ttl uses the store default.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	s.c.Set(key, append([]byte(nil), value...), ttl)
	return nil
}
