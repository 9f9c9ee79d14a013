package cache

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

const (
	memoryShards             = 16
	memoryEvictionPercentage = 10
)

// MemoryStore keeps entries in process. Every entry lives for the ttl the
// store was created with; the per-call ttl of Set is ignored.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	shards := memoryShards
	if capacity < shards {
		shards = 1
	}
	return &MemoryStore{
		client: sturdyc.New[[]byte](capacity, shards, ttl, memoryEvictionPercentage),
	}
}

func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := c.client.Get(key)
	if !ok {
		return nil, nil
	}
	return val, nil
}

func (c *MemoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.client.Set(key, value)
	return nil
}

func (c *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.client.Delete(key)
	}
	return nil
}

// DeletePattern removes keys matching a redis style glob: "*" matches any
// run of characters, "/" included, and "?" matches one character.
func (c *MemoryStore) DeletePattern(_ context.Context, pattern string) (int, error) {
	re, err := globRegexp(pattern)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, key := range c.client.ScanKeys() {
		if re.MatchString(key) {
			c.client.Delete(key)
			deleted++
		}
	}
	return deleted, nil
}

func (c *MemoryStore) Ping(context.Context) error { return nil }

func globRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString("(?s:.*)")
		case '?':
			b.WriteString("(?s:.)")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
