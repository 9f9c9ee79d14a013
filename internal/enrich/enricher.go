package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/google/uuid"
)

var ErrUnknownKind = errors.New("unknown document kind")

// Strategy assembles one raw document into a domain value, running any
// sub-searches it needs against store.
type Strategy func(ctx context.Context, store search.Store, doc search.Document) (any, error)

// Enricher turns raw documents into domain values by kind.
type Enricher struct {
	store search.Store

	mu         sync.RWMutex
	strategies map[domain.Kind]Strategy
}

// New returns an enricher with the film, film summary, person and genre
// strategies registered.
func New(store search.Store) *Enricher {
	e := &Enricher{store: store, strategies: make(map[domain.Kind]Strategy)}
	e.register(domain.KindFilm, assembleFilm)
	e.register(domain.KindFilmSummary, assembleFilmSummary)
	e.register(domain.KindPerson, assemblePerson)
	e.register(domain.KindGenre, assembleGenre)
	return e
}

// register adds or replaces the strategy for kind.
func (e *Enricher) register(kind domain.Kind, s Strategy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategies[kind] = s
}

func (e *Enricher) Assemble(ctx context.Context, kind domain.Kind, doc search.Document) (any, error) {
	e.mu.RLock()
	s, ok := e.strategies[kind]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return s(ctx, e.store, doc)
}

// Into assembles doc and asserts the result to T.
func Into[T any](ctx context.Context, e *Enricher, kind domain.Kind, doc search.Document) (T, error) {
	var zero T
	v, err := e.Assemble(ctx, kind, doc)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("kind %q assembles %T, not %T", kind, v, zero)
	}
	return t, nil
}

// documentID prefers the id stored in the source and falls back to the
// backend id.
func documentID(sourceID string, doc search.Document) (uuid.UUID, error) {
	id := sourceID
	if id == "" {
		id = doc.ID
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("document id %q: %w", id, err)
	}
	return u, nil
}
