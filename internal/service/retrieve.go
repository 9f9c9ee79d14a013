package service

import (
	"context"

	"github.com/actuallystonmai/catalog-service/internal/cache"
	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/enrich"
)

// RetrieveService fetches one document by id and assembles it as T.
type RetrieveService[T any] struct {
	catalog *Catalog
	index   domain.Index
	kind    domain.Kind
	id      string
}

func Retrieve[T any](c *Catalog, index domain.Index, kind domain.Kind, id string) *RetrieveService[T] {
	return &RetrieveService[T]{catalog: c, index: index, kind: kind, id: id}
}

// Get returns domain.ErrNotFound when the index has no such id.
func (s *RetrieveService[T]) Get(ctx context.Context) (T, error) {
	c := s.catalog
	return cached(ctx, c, s.index, cache.ByIDKey(s.index, s.id), func(ctx context.Context) (T, error) {
		var zero T
		doc, err := c.store.Get(ctx, s.index, s.id)
		if err != nil {
			return zero, err
		}
		return enrich.Into[T](ctx, c.enricher, s.kind, doc)
	})
}
