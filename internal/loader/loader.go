package loader

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"go.uber.org/zap"
)

const DefaultBatchSize = 500

// Source pages through the catalog source of truth.
type Source interface {
	Genres(ctx context.Context, limit, offset int) ([]search.GenreDoc, error)
	Persons(ctx context.Context, limit, offset int) ([]search.PersonDoc, error)
	Movies(ctx context.Context, limit, offset int) ([]search.MovieDoc, error)
}

type Loader struct {
	source    Source
	indexer   search.Indexer
	batchSize int
	logger    *zap.Logger
}

func New(source Source, indexer search.Indexer, batchSize int, logger *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		source:    source,
		indexer:   indexer,
		batchSize: batchSize,
		logger:    logger.With(zap.String("component", "loader")),
	}
}

// Run ensures every index exists and copies the source into it, genres
// and persons before the movies that reference them. It returns the
// number of documents written per index.
func (l *Loader) Run(ctx context.Context) (map[domain.Index]int, error) {
	loaded := make(map[domain.Index]int, len(domain.Indices))
	for _, index := range domain.Indices {
		if err := l.indexer.EnsureIndex(ctx, index); err != nil {
			return loaded, err
		}
		n, err := l.load(ctx, index)
		loaded[index] = n
		if err != nil {
			return loaded, fmt.Errorf("load %s: %w", index, err)
		}
		l.logger.Info("index loaded", zap.String("index", index.String()), zap.Int("documents", n))
	}
	return loaded, nil
}

func (l *Loader) load(ctx context.Context, index domain.Index) (int, error) {
	total := 0
	for offset := 0; ; offset += l.batchSize {
		docs, err := l.page(ctx, index, offset)
		if err != nil {
			return total, err
		}
		if len(docs) == 0 {
			return total, nil
		}
		if err := l.indexer.Index(ctx, index, docs); err != nil {
			return total, err
		}
		total += len(docs)
		if len(docs) < l.batchSize {
			return total, nil
		}
	}
}

func (l *Loader) page(ctx context.Context, index domain.Index, offset int) ([]search.Document, error) {
	switch index {
	case domain.IndexGenres:
		items, err := l.source.Genres(ctx, l.batchSize, offset)
		if err != nil {
			return nil, err
		}
		return documents(items, func(g search.GenreDoc) string { return g.ID })
	case domain.IndexPersons:
		items, err := l.source.Persons(ctx, l.batchSize, offset)
		if err != nil {
			return nil, err
		}
		return documents(items, func(p search.PersonDoc) string { return p.ID })
	case domain.IndexMovies:
		items, err := l.source.Movies(ctx, l.batchSize, offset)
		if err != nil {
			return nil, err
		}
		return documents(items, func(m search.MovieDoc) string { return m.ID })
	}
	return nil, fmt.Errorf("no source for index %q", index)
}

func documents[T any](items []T, id func(T) string) ([]search.Document, error) {
	docs := make([]search.Document, 0, len(items))
	for _, item := range items {
		doc, err := search.NewDocument(id(item), item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
