package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/cache"
	"github.com/actuallystonmai/catalog-service/internal/config"
	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/metrics"
	"github.com/actuallystonmai/catalog-service/internal/retry"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/actuallystonmai/catalog-service/internal/search/blevestore"
	"github.com/actuallystonmai/catalog-service/internal/search/elastic"
	"github.com/actuallystonmai/catalog-service/internal/service"
	"go.uber.org/zap"
)

// App holds the backends built from configuration.
type App struct {
	Search  search.Backend
	Cache   cache.Store
	Catalog *service.Catalog

	closers []func() error
}

// New connects the search backend and cache and assembles the catalog.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*App, error) {
	if m == nil {
		m = metrics.Nop()
	}
	a := &App{}

	backend, err := NewSearch(ctx, cfg, logger, m)
	if err != nil {
		return nil, err
	}
	a.Search = backend
	a.closers = append(a.closers, backend.Close)

	store, closeCache, err := NewCache(cfg, logger, m)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Cache = store
	a.closers = append(a.closers, closeCache)

	codec, err := cache.NewCodec(cfg.CacheCodec)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Catalog = service.NewCatalog(backend, store, codec, service.Options{
		TTL:               cfg.CacheTTL,
		Coalesce:          cfg.CacheCoalesce,
		EnrichConcurrency: cfg.EnrichConcurrency,
		Logger:            logger,
		Metrics:           m,
	})
	return a, nil
}

// NewSearch builds the configured search backend and makes sure every
// catalog index exists.
func NewSearch(ctx context.Context, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (search.Backend, error) {
	var backend search.Backend
	switch cfg.SearchBackend {
	case config.SearchElastic:
		client, err := elastic.New(cfg.ElasticURL, observed(cfg.RetryPolicy(), config.SearchElastic, logger, m))
		if err != nil {
			return nil, err
		}
		backend = client
	case config.SearchBleve:
		backend = blevestore.New(cfg.BlevePath)
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.SearchBackend)
	}

	for _, index := range domain.Indices {
		if err := backend.EnsureIndex(ctx, index); err != nil {
			backend.Close()
			return nil, fmt.Errorf("ensure index %s: %w", index, err)
		}
	}
	return backend, nil
}

// NewCache builds the configured response cache and its close func.
func NewCache(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (cache.Store, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(cfg.RedisURL, cfg.RedisPoolSize)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewRedisStore(client, observed(cfg.RetryPolicy(), config.CacheRedis, logger, m))
		return store, store.Close, nil
	case config.CacheMemory:
		return cache.NewMemoryStore(cfg.MemoryCacheCapacity, cfg.CacheTTL), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

func observed(p retry.Policy, backend string, logger *zap.Logger, m *metrics.Metrics) retry.Policy {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.Nop()
	}
	p.OnRetry = func(err error, wait time.Duration) {
		m.Retry(backend)
		logger.Warn("backend call failed, retrying",
			zap.String("backend", backend),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	return p
}

// Checks are the dependency probes reported by /health.
func (a *App) Checks() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"search": a.Search.Ping,
		"cache":  a.Cache.Ping,
	}
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
