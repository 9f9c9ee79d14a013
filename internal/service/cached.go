package service

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"go.uber.org/zap"
)

// sharedLoadTimeout bounds a coalesced computation, which no caller's
// context can cancel.
const sharedLoadTimeout = 30 * time.Second

// cached runs the cache-aside protocol for one key. On a miss the computed
// value is encoded, stored, and decoded again so hits and misses return
// the same canonical value. Concurrent misses on a key share one
// computation when coalescing is on.
func cached[T any](ctx context.Context, c *Catalog, index domain.Index, key string, compute func(context.Context) (T, error)) (T, error) {
	var out T

	payload, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return out, fmt.Errorf("cache get %s: %w", key, err)
	}

	if payload != nil {
		c.metrics.CacheHit(index.String())
	} else {
		c.metrics.CacheMiss(index.String())
		c.logger.Debug("cache miss", zap.String("key", key))

		load := func(ctx context.Context) ([]byte, error) {
			v, err := compute(ctx)
			if err != nil {
				return nil, err
			}
			data, err := c.codec.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", key, err)
			}
			if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
				c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
				return nil, fmt.Errorf("cache set %s: %w", key, err)
			}
			return data, nil
		}

		if c.coalesce {
			// The shared load outlives any single caller; each caller
			// only stops waiting on its own cancellation.
			ch := c.flight.DoChan(key, func() (any, error) {
				lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
				defer cancel()
				return load(lctx)
			})
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case res := <-ch:
				if res.Err != nil {
					return out, res.Err
				}
				if res.Shared {
					c.metrics.Coalesce(index.String())
				}
				payload = res.Val.([]byte)
			}
		} else {
			if payload, err = load(ctx); err != nil {
				return out, err
			}
		}
	}

	if err := c.codec.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}
