package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/phuslu/log"
)

// TTLCache stores JSON-encoded values of type T under a key prefix.
// Read and write failures are logged and treated as misses.
type TTLCache[T any] struct {
	store  Store
	prefix string
	ttl    time.Duration
}

func NewTTLCache[T any](store Store, prefix string, ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{store: store, prefix: prefix, ttl: ttl}
}

func (c *TTLCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	if c == nil || c.store == nil {
		return zero, false
	}
	data, ok, err := c.store.Get(ctx, c.prefix+key)
	if err != nil {
		log.Warn().Err(err).Str("key", c.prefix+key).Msg("cache read failed")
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn().Err(err).Str("key", c.prefix+key).Msg("cache entry undecodable")
		return zero, false
	}
	return value, true
}

func (c *TTLCache[T]) Set(ctx context.Context, key string, value T) {
	if c == nil || c.store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", c.prefix+key).Msg("cache entry unencodable")
		return
	}
	if err := c.store.Set(ctx, c.prefix+key, data, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", c.prefix+key).Msg("cache write failed")
	}
}

func (c *TTLCache[T]) TTL() time.Duration {
	return c.ttl
}
