package query

import (
	"context"
	"strconv"

	"github.com/actuallystonmai/catalog-service/internal/cache"
	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

// Params are the list inputs supplied by the routing layer.
type Params struct {
	Filter Filter
	Query  SearchQuery
	Page   Pagination
	Sort   SortSpec
}

// Build turns params into a backend request. A filter wins over a search
// query; the filter is resolved against store, so Build may fail with
// domain.ErrNotFound.
func Build(ctx context.Context, store search.Store, p Params) (*search.Request, error) {
	req := &search.Request{}

	if sort := p.Sort.Backend(); sort != "" {
		req.Sort = []string{sort}
	}

	switch {
	case !p.Filter.IsNone():
		body, err := p.Filter.Resolve(ctx, store)
		if err != nil {
			return nil, err
		}
		req.Body = body
	case !p.Query.IsZero():
		req.Body = &search.Body{
			Query: search.QueryString{Query: p.Query.Text, Fields: p.Query.Fields},
		}
	}

	if from, size, ok := p.Page.Window(); ok {
		req.From = &from
		req.Size = &size
	}

	return req, nil
}

// CacheKey derives the list cache key. Only set params appear, always in
// the order filter, page_number, page_size, query, sort.
func (p Params) CacheKey(index domain.Index) string {
	k := cache.NewKey(index).With("filter", p.Filter.String())
	if p.Page.Number > 0 {
		k = k.With("page_number", strconv.Itoa(p.Page.Number))
	}
	if p.Page.Size > 0 {
		k = k.With("page_size", strconv.Itoa(p.Page.Size))
	}
	return k.With("query", p.Query.Text).
		With("sort", string(p.Sort)).
		String()
}
