package blevestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/blevesearch/bleve/v2"
)

// DefaultSize is the result count when a request carries no window.
const DefaultSize = 10

var _ search.Backend = (*Store)(nil)

// Store is an embedded search backend. Each catalog index is a bleve index,
// kept in memory when dir is empty or under dir otherwise. The raw source
// of every document is stored next to it as internal data.
type Store struct {
	dir string

	mu      sync.RWMutex
	indices map[domain.Index]bleve.Index
}

func New(dir string) *Store {
	return &Store{dir: dir, indices: make(map[domain.Index]bleve.Index)}
}

// NewMemory returns an in-memory store with every catalog index created.
func NewMemory() (*Store, error) {
	s := New("")
	for _, index := range domain.Indices {
		if err := s.EnsureIndex(context.Background(), index); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) EnsureIndex(_ context.Context, index domain.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indices[index]; ok {
		return nil
	}

	m, err := Mapping(index)
	if err != nil {
		return err
	}

	var idx bleve.Index
	if s.dir == "" {
		idx, err = bleve.NewMemOnly(m)
	} else {
		path := filepath.Join(s.dir, index.String())
		if _, statErr := os.Stat(path); statErr == nil {
			idx, err = bleve.Open(path)
		} else {
			idx, err = bleve.New(path, m)
		}
	}
	if err != nil {
		return fmt.Errorf("open index %s: %w", index, err)
	}

	s.indices[index] = idx
	return nil
}

func (s *Store) index(index domain.Index) (bleve.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indices[index]
	if !ok {
		return nil, fmt.Errorf("index %s: %w", index, domain.ErrNotFound)
	}
	return idx, nil
}

func (s *Store) Get(_ context.Context, index domain.Index, id string) (search.Document, error) {
	idx, err := s.index(index)
	if err != nil {
		return search.Document{}, err
	}

	src, err := idx.GetInternal([]byte(id))
	if err != nil {
		return search.Document{}, fmt.Errorf("get %s/%s: %w", index, id, err)
	}
	if src == nil {
		return search.Document{}, fmt.Errorf("get %s/%s: %w", index, id, domain.ErrNotFound)
	}
	return search.Document{ID: id, Source: src}, nil
}

func (s *Store) Search(ctx context.Context, index domain.Index, req *search.Request) ([]search.Document, error) {
	idx, err := s.index(index)
	if err != nil {
		return nil, err
	}

	q, err := translate(req.Query())
	if err != nil {
		return nil, err
	}

	from, size := req.Window()
	if size <= 0 {
		size = DefaultSize
	}

	sr := bleve.NewSearchRequestOptions(q, size, from, false)
	if order := req.SortFields(); len(order) > 0 {
		sr.SortBy(sortOrder(order))
	}

	res, err := idx.SearchInContext(ctx, sr)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	docs := make([]search.Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		src, err := idx.GetInternal([]byte(hit.ID))
		if err != nil {
			return nil, fmt.Errorf("load source %s/%s: %w", index, hit.ID, err)
		}
		if src == nil {
			continue
		}
		if fields := req.SourceFields(); len(fields) > 0 {
			if src, err = project(src, fields); err != nil {
				return nil, err
			}
		}
		docs = append(docs, search.Document{ID: hit.ID, Source: src})
	}
	return docs, nil
}

// project keeps only the listed top-level fields of a JSON source.
func project(src []byte, fields []string) ([]byte, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(src, &all); err != nil {
		return nil, fmt.Errorf("project source: %w", err)
	}
	kept := make(map[string]json.RawMessage, len(fields))
	for _, f := range fields {
		if v, ok := all[f]; ok {
			kept[f] = v
		}
	}
	return json.Marshal(kept)
}

func (s *Store) Index(_ context.Context, index domain.Index, docs []search.Document) error {
	idx, err := s.index(index)
	if err != nil {
		return err
	}

	batch := idx.NewBatch()
	for _, doc := range docs {
		var data map[string]any
		if err := json.Unmarshal(doc.Source, &data); err != nil {
			return fmt.Errorf("decode document %s: %w", doc.ID, err)
		}
		if err := batch.Index(doc.ID, data); err != nil {
			return fmt.Errorf("index document %s: %w", doc.ID, err)
		}
		batch.SetInternal([]byte(doc.ID), doc.Source)
	}
	if err := idx.Batch(batch); err != nil {
		return fmt.Errorf("index batch into %s: %w", index, err)
	}
	return nil
}

func (s *Store) Count(_ context.Context, index domain.Index) (int, error) {
	idx, err := s.index(index)
	if err != nil {
		return 0, err
	}
	n, err := idx.DocCount()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", index, err)
	}
	return int(n), nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for name, idx := range s.indices {
		if err := idx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		delete(s.indices, name)
	}
	return errors.Join(errs...)
}
