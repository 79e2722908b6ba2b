// Package cache holds fetched page HTML so re-parses do not refetch.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store is an explicit page cache backed by Redis. It is passed to the
// fetch layer rather than living as a module-level map, so eviction is
// Redis's TTL and nothing in the parsing core holds state.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a Store to the Redis instance at addr. Entries expire
// after ttl.
func New(addr string, ttl time.Duration) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get returns the cached value for key, reporting whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Put stores a value under key with the store's TTL.
func (s *Store) Put(ctx context.Context, key, val string) {
	s.client.Set(ctx, key, val, s.ttl)
}

// Memoize caches fn's result in the store under key. A nil store calls fn
// directly, which keeps cache use optional at every call site.
func Memoize[T any](ctx context.Context, s *Store, key string, fn func() (T, error)) (T, error) {
	var result T
	if s == nil {
		return fn()
	}

	if cached, ok := s.Get(ctx, key); ok {
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	result, err := fn()
	if err != nil {
		return result, err
	}

	if data, err := json.Marshal(result); err == nil {
		s.Put(ctx, key, string(data))
	}
	return result, nil
}
