package cache

import (
	"context"
	"time"
)

// Store is the cache backend. Get returns nil, nil on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// Flusher removes every key matching a glob pattern.
type Flusher interface {
	DeletePattern(ctx context.Context, pattern string) (int, error)
}
