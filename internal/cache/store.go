// Package cache provides the TTL caches used by the price and symbol-search
// adapters. Entries are byte payloads with an expiry, checked lazily on read.
package cache

import (
	"context"
	"time"
)

// Store is a key/value store with per-entry expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Status(ctx context.Context) string
}
