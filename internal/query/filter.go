package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

type FilterKind int

const (
	NoFilter FilterKind = iota
	FilterByGenre
	FilterByPerson
)

func (k FilterKind) String() string {
	switch k {
	case FilterByGenre:
		return "genre"
	case FilterByPerson:
		return "person"
	default:
		return "none"
	}
}

// Filter restricts a film list to the films of one genre or one person.
// The zero value is NoFilter.
type Filter struct {
	kind FilterKind
	id   string
}

// NewFilter is the only way to build a filter. Without an id the result is
// NoFilter, never a filter that matches nothing.
func NewFilter(kind FilterKind, id string) Filter {
	id = strings.TrimSpace(id)
	if id == "" || kind == NoFilter {
		return Filter{}
	}
	return Filter{kind: kind, id: id}
}

func ByGenre(genreID string) Filter {
	return NewFilter(FilterByGenre, genreID)
}

func ByPerson(personID string) Filter {
	return NewFilter(FilterByPerson, personID)
}

func (f Filter) Kind() FilterKind { return f.kind }

func (f Filter) ID() string { return f.id }

func (f Filter) IsNone() bool { return f.kind == NoFilter }

// String is the referenced id; it is what goes into cache keys.
func (f Filter) String() string { return f.id }

// Resolve fetches the referenced entity and returns the body that scopes
// films to it. A missing entity yields domain.ErrNotFound.
func (f Filter) Resolve(ctx context.Context, store search.Store) (*search.Body, error) {
	switch f.kind {
	case FilterByGenre:
		doc, err := store.Get(ctx, domain.IndexGenres, f.id)
		if err != nil {
			return nil, fmt.Errorf("resolve genre filter %s: %w", f.id, err)
		}
		var genre search.GenreDoc
		if err := doc.Decode(&genre); err != nil {
			return nil, err
		}
		return &search.Body{
			Query: search.Term{Field: search.FieldGenre, Value: genre.Name},
		}, nil

	case FilterByPerson:
		doc, err := store.Get(ctx, domain.IndexPersons, f.id)
		if err != nil {
			return nil, fmt.Errorf("resolve person filter %s: %w", f.id, err)
		}
		var person search.PersonDoc
		if err := doc.Decode(&person); err != nil {
			return nil, err
		}
		if person.ID == "" {
			person.ID = doc.ID
		}
		return &search.Body{
			Query:  search.FilmsByPerson(person),
			Sort:   []string{SortSpec("-" + search.FieldIMDbRating).Backend()},
			Source: []string{search.FieldID, search.FieldTitle, search.FieldIMDbRating},
			Limit:  search.MaxRelated,
		}, nil
	}
	return nil, nil
}
