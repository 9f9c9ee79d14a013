package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr() != ":8000" {
		t.Errorf("addr = %q, want :8000", cfg.Addr())
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("cache ttl = %v, want 60s", cfg.CacheTTL)
	}
	if cfg.SearchBackend != SearchElastic || cfg.CacheBackend != CacheRedis {
		t.Errorf("backends = %s/%s", cfg.SearchBackend, cfg.CacheBackend)
	}
	if !cfg.CacheCoalesce {
		t.Error("coalescing should default to on")
	}

	p := cfg.RetryPolicy()
	if p.Attempts != 3 || p.BaseDelay != time.Second || p.Factor != 2 {
		t.Errorf("retry policy = %+v", p)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SEARCH_BACKEND", "bleve")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CACHE_CODEC", "msgpack")
	t.Setenv("CACHE_COALESCE", "false")
	t.Setenv("RETRY_BASE_DELAY", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9001 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.SearchBackend != SearchBleve || cfg.CacheBackend != CacheMemory {
		t.Errorf("backends = %s/%s", cfg.SearchBackend, cfg.CacheBackend)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v", cfg.CacheTTL)
	}
	if cfg.CacheCodec != "msgpack" || cfg.CacheCoalesce {
		t.Errorf("codec = %s, coalesce = %v", cfg.CacheCodec, cfg.CacheCoalesce)
	}
	if cfg.RetryBaseDelay != 250*time.Millisecond {
		t.Errorf("retry base delay = %v", cfg.RetryBaseDelay)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown search backend", "SEARCH_BACKEND", "solr"},
		{"unknown cache backend", "CACHE_BACKEND", "memcached"},
		{"unknown codec", "CACHE_CODEC", "gob"},
		{"zero attempts", "RETRY_ATTEMPTS", "0"},
		{"port out of range", "PORT", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
