package enrich

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"github.com/google/uuid"
)

var creditFields = []string{
	search.FieldID,
	search.FieldActorsNames,
	search.FieldWritersNames,
	search.FieldDirector,
}

func assemblePerson(ctx context.Context, store search.Store, doc search.Document) (any, error) {
	var p search.PersonDoc
	if err := doc.Decode(&p); err != nil {
		return nil, err
	}
	id, err := documentID(p.ID, doc)
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = doc.ID
	}

	films, err := FilmsOf(ctx, store, p)
	if err != nil {
		return nil, fmt.Errorf("assemble person %s: %w", doc.ID, err)
	}

	filmIDs := make([]uuid.UUID, 0, len(films))
	for _, f := range films {
		if f.ID == "" {
			continue
		}
		fid, err := uuid.Parse(f.ID)
		if err != nil {
			return nil, fmt.Errorf("film id %q: %w", f.ID, err)
		}
		filmIDs = append(filmIDs, fid)
	}

	return domain.Person{
		UUID:     id,
		FullName: p.FullName,
		Role:     ResolveRole(p.FullName, films),
		FilmIDs:  filmIDs,
	}, nil
}

// FilmsOf returns the credit fields of every film the person took part in,
// best rated first.
func FilmsOf(ctx context.Context, store search.Store, p search.PersonDoc) ([]search.MovieDoc, error) {
	docs, err := store.Search(ctx, domain.IndexMovies, &search.Request{Body: &search.Body{
		Query:  search.FilmsByPerson(p),
		Sort:   []string{search.FieldIMDbRating + ":desc"},
		Source: creditFields,
		Limit:  search.MaxRelated,
	}})
	if err != nil {
		return nil, fmt.Errorf("films of %s: %w", p.ID, err)
	}

	films := make([]search.MovieDoc, 0, len(docs))
	for _, d := range docs {
		var m search.MovieDoc
		if err := d.Decode(&m); err != nil {
			return nil, err
		}
		if m.ID == "" {
			m.ID = d.ID
		}
		films = append(films, m)
	}
	return films, nil
}
