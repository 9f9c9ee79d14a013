package enrich

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
	"golang.org/x/sync/errgroup"
)

func assembleFilm(ctx context.Context, store search.Store, doc search.Document) (any, error) {
	var m search.MovieDoc
	if err := doc.Decode(&m); err != nil {
		return nil, err
	}
	id, err := documentID(m.ID, doc)
	if err != nil {
		return nil, err
	}

	film := domain.Film{
		UUID:        id,
		Title:       m.Title,
		IMDbRating:  m.IMDbRating,
		Description: m.Description,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		film.Genre, err = genresByName(gctx, store, m.Genre)
		return err
	})
	g.Go(func() error {
		var err error
		film.Directors, err = personsByName(gctx, store, m.Director)
		return err
	})
	g.Go(func() error {
		var err error
		if film.Actors, err = personRefs(m.Actors); err != nil {
			return err
		}
		film.Writers, err = personRefs(m.Writers)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assemble film %s: %w", doc.ID, err)
	}
	return film, nil
}

func assembleFilmSummary(_ context.Context, _ search.Store, doc search.Document) (any, error) {
	var m search.MovieDoc
	if err := doc.Decode(&m); err != nil {
		return nil, err
	}
	id, err := documentID(m.ID, doc)
	if err != nil {
		return nil, err
	}
	return domain.FilmSummary{UUID: id, Title: m.Title, IMDbRating: m.IMDbRating}, nil
}

func assembleGenre(_ context.Context, _ search.Store, doc search.Document) (any, error) {
	var g search.GenreDoc
	if err := doc.Decode(&g); err != nil {
		return nil, err
	}
	id, err := documentID(g.ID, doc)
	if err != nil {
		return nil, err
	}
	return domain.Genre{UUID: id, Name: g.Name, Description: g.Description}, nil
}

func related(field string, values []string) *search.Request {
	return &search.Request{Body: &search.Body{
		Query: search.Terms{Field: field, Values: values},
		Limit: search.MaxRelated,
	}}
}

func genresByName(ctx context.Context, store search.Store, names []string) ([]domain.GenreRef, error) {
	refs := make([]domain.GenreRef, 0, len(names))
	if len(names) == 0 {
		return refs, nil
	}
	docs, err := store.Search(ctx, domain.IndexGenres, related(search.FieldNameRaw, names))
	if err != nil {
		return nil, fmt.Errorf("genres by name: %w", err)
	}
	for _, d := range docs {
		var g search.GenreDoc
		if err := d.Decode(&g); err != nil {
			return nil, err
		}
		id, err := documentID(g.ID, d)
		if err != nil {
			return nil, err
		}
		refs = append(refs, domain.GenreRef{UUID: id, Name: g.Name})
	}
	return refs, nil
}

func personsByName(ctx context.Context, store search.Store, names []string) ([]domain.PersonRef, error) {
	refs := make([]domain.PersonRef, 0, len(names))
	if len(names) == 0 {
		return refs, nil
	}
	docs, err := store.Search(ctx, domain.IndexPersons, related(search.FieldFullNameRaw, names))
	if err != nil {
		return nil, fmt.Errorf("persons by name: %w", err)
	}
	for _, d := range docs {
		var p search.PersonDoc
		if err := d.Decode(&p); err != nil {
			return nil, err
		}
		id, err := documentID(p.ID, d)
		if err != nil {
			return nil, err
		}
		refs = append(refs, domain.PersonRef{UUID: id, FullName: p.FullName})
	}
	return refs, nil
}

func personRefs(people []search.PersonInMovie) ([]domain.PersonRef, error) {
	refs := make([]domain.PersonRef, 0, len(people))
	for _, p := range people {
		id, err := documentID(p.ID, search.Document{})
		if err != nil {
			return nil, err
		}
		refs = append(refs, domain.PersonRef{UUID: id, FullName: p.Name})
	}
	return refs, nil
}
