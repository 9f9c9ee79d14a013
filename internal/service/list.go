package service

import (
	"context"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/enrich"
	"github.com/actuallystonmai/catalog-service/internal/query"
	"golang.org/x/sync/errgroup"
)

// ListService runs a filtered, searched or paginated query and assembles
// every hit as T, in backend order.
type ListService[T any] struct {
	catalog *Catalog
	index   domain.Index
	kind    domain.Kind
	params  query.Params
}

func List[T any](c *Catalog, index domain.Index, kind domain.Kind, params query.Params) *ListService[T] {
	return &ListService[T]{catalog: c, index: index, kind: kind, params: params}
}

func (s *ListService[T]) Get(ctx context.Context) ([]T, error) {
	return cached(ctx, s.catalog, s.index, s.params.CacheKey(s.index), s.compute)
}

func (s *ListService[T]) compute(ctx context.Context) ([]T, error) {
	c := s.catalog

	req, err := query.Build(ctx, c.store, s.params)
	if err != nil {
		return nil, err
	}
	docs, err := c.store.Search(ctx, s.index, req)
	if err != nil {
		return nil, err
	}

	// Process documents concurrently with bounded worker pool
	items := make([]T, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			item, err := enrich.Into[T](gctx, c.enricher, s.kind, doc)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
