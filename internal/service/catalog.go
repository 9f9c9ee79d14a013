package service

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/cache"
	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/enrich"
	"github.com/actuallystonmai/catalog-service/internal/metrics"
	"github.com/actuallystonmai/catalog-service/internal/query"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTTL               = 60 * time.Second
	defaultEnrichConcurrency = 10
)

type Options struct {
	TTL               time.Duration
	Coalesce          bool
	EnrichConcurrency int
	Logger            *zap.Logger
	Metrics           *metrics.Metrics
}

// Catalog owns the read path dependencies and exposes the API operations.
// It is safe for concurrent use.
type Catalog struct {
	store    search.Store
	cache    cache.Store
	codec    cache.Codec
	enricher *enrich.Enricher

	ttl         time.Duration
	coalesce    bool
	concurrency int
	flight      singleflight.Group

	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewCatalog(store search.Store, cacheStore cache.Store, codec cache.Codec, opts Options) *Catalog {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.EnrichConcurrency <= 0 {
		opts.EnrichConcurrency = defaultEnrichConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop()
	}
	if codec == nil {
		codec = cache.JSONCodec{}
	}

	return &Catalog{
		store:       store,
		cache:       cacheStore,
		codec:       codec,
		enricher:    enrich.New(store),
		ttl:         opts.TTL,
		coalesce:    opts.Coalesce,
		concurrency: opts.EnrichConcurrency,
		logger:      opts.Logger.With(zap.String("component", "service")),
		metrics:     opts.Metrics,
	}
}

func (c *Catalog) FilmList(ctx context.Context, genreID string, sort query.SortSpec, page query.Pagination) ([]domain.FilmSummary, error) {
	return List[domain.FilmSummary](c, domain.IndexMovies, domain.KindFilmSummary, query.Params{
		Filter: query.ByGenre(genreID),
		Sort:   sort,
		Page:   page,
	}).Get(ctx)
}

func (c *Catalog) FilmSearch(ctx context.Context, text string, page query.Pagination) ([]domain.FilmSummary, error) {
	return List[domain.FilmSummary](c, domain.IndexMovies, domain.KindFilmSummary, query.Params{
		Query: query.NewSearchQuery(text, search.SearchFields[domain.IndexMovies]...),
		Page:  page,
	}).Get(ctx)
}

func (c *Catalog) Film(ctx context.Context, id string) (domain.Film, error) {
	return Retrieve[domain.Film](c, domain.IndexMovies, domain.KindFilm, id).Get(ctx)
}

func (c *Catalog) PersonList(ctx context.Context, page query.Pagination) ([]domain.Person, error) {
	return List[domain.Person](c, domain.IndexPersons, domain.KindPerson, query.Params{Page: page}).Get(ctx)
}

func (c *Catalog) PersonSearch(ctx context.Context, text string, page query.Pagination) ([]domain.Person, error) {
	return List[domain.Person](c, domain.IndexPersons, domain.KindPerson, query.Params{
		Query: query.NewSearchQuery(text, search.SearchFields[domain.IndexPersons]...),
		Page:  page,
	}).Get(ctx)
}

func (c *Catalog) Person(ctx context.Context, id string) (domain.Person, error) {
	return Retrieve[domain.Person](c, domain.IndexPersons, domain.KindPerson, id).Get(ctx)
}

// PersonFilms lists every film of a person, best rated first.
func (c *Catalog) PersonFilms(ctx context.Context, personID string) ([]domain.FilmSummary, error) {
	return List[domain.FilmSummary](c, domain.IndexMovies, domain.KindFilmSummary, query.Params{
		Filter: query.ByPerson(personID),
	}).Get(ctx)
}

func (c *Catalog) GenreList(ctx context.Context, page query.Pagination) ([]domain.Genre, error) {
	return List[domain.Genre](c, domain.IndexGenres, domain.KindGenre, query.Params{Page: page}).Get(ctx)
}

func (c *Catalog) Genre(ctx context.Context, id string) (domain.Genre, error) {
	return Retrieve[domain.Genre](c, domain.IndexGenres, domain.KindGenre, id).Get(ctx)
}

// Flush drops every cached response derived from the given indices, or
// from all indices when none are named. It needs a cache that can delete
// by pattern.
func (c *Catalog) Flush(ctx context.Context, indices ...domain.Index) (int, error) {
	flusher, ok := c.cache.(cache.Flusher)
	if !ok {
		return 0, fmt.Errorf("cache %T cannot flush by pattern", c.cache)
	}
	if len(indices) == 0 {
		indices = domain.Indices
	}

	total := 0
	for _, index := range indices {
		n, err := flusher.DeletePattern(ctx, cache.IndexPattern(index))
		total += n
		if err != nil {
			return total, fmt.Errorf("flush %s: %w", index, err)
		}
		// unfiltered, unpaginated lists are keyed by the bare index name
		if err := c.cache.Delete(ctx, index.String()); err != nil {
			return total, fmt.Errorf("flush %s: %w", index, err)
		}
	}

	c.logger.Info("cache flushed", zap.Int("deleted", total))
	return total, nil
}
