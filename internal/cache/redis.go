package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/retry"
	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

type RedisStore struct {
	client *redis.Client
	retry  retry.Policy
}

// NewRedisClient parses a redis:// URL into a pooled client.
func NewRedisClient(url string, poolSize int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	return redis.NewClient(opts), nil
}

func NewRedisStore(client *redis.Client, policy retry.Policy) *RedisStore {
	return &RedisStore{client: client, retry: policy}
}

func isTransient(err error) bool {
	return errors.Is(err, redis.ErrClosed) || retry.IsConnectionError(err)
}

// Get value from cache, nil on miss
func (c *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	var val []byte
	err := c.retry.Do(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			val = nil
			return nil
		}
		if err != nil {
			return err
		}
		val = b
		return nil
	}, isTransient)
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, nil
}

// Store value in cache with expiry
func (c *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.retry.Do(ctx, func() error {
		return c.client.Set(ctx, key, value, ttl).Err()
	}, isTransient)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// DeletePattern removes matching keys with SCAN so redis is never blocked.
func (c *RedisStore) DeletePattern(ctx context.Context, pattern string) (int, error) {
	deleted := 0
	iter := c.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
		deleted++
	}
	return deleted, iter.Err()
}

// Ping connectivity
func (c *RedisStore) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisStore) Close() error {
	return c.client.Close()
}
