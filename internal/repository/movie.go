package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/actuallystonmai/catalog-service/internal/search"
)

// credit is one row of person_film_work joined with the person.
type credit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

const moviesQuery = `
SELECT fw.id::text,
	fw.title,
	COALESCE(fw.description, ''),
	COALESCE(fw.rating, 0),
	COALESCE(array_agg(DISTINCT g.name) FILTER (WHERE g.id IS NOT NULL), '{}'),
	COALESCE(jsonb_agg(DISTINCT jsonb_build_object('id', p.id, 'name', p.full_name, 'role', pfw.role))
		FILTER (WHERE p.id IS NOT NULL), '[]')
FROM content.film_work fw
LEFT JOIN content.genre_film_work gfw ON gfw.film_work_id = fw.id
LEFT JOIN content.genre g ON g.id = gfw.genre_id
LEFT JOIN content.person_film_work pfw ON pfw.film_work_id = fw.id
LEFT JOIN content.person p ON p.id = pfw.person_id
GROUP BY fw.id
ORDER BY fw.id
LIMIT $1 OFFSET $2`

func (r *Repository) Movies(ctx context.Context, limit, offset int) ([]search.MovieDoc, error) {
	rows, err := r.pool.Query(ctx, moviesQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var items []search.MovieDoc
	for rows.Next() {
		var (
			m       search.MovieDoc
			credits []byte
		)
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.IMDbRating, &m.Genre, &credits); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}

		var cs []credit
		if err := json.Unmarshal(credits, &cs); err != nil {
			return nil, fmt.Errorf("decode credits of movie %s: %w", m.ID, err)
		}
		applyCredits(&m, cs)
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over movies: %w", err)
	}
	return items, nil
}

// applyCredits spreads person credits into the denormalized movie fields.
// Every list is non-nil so the indexed document never carries nulls.
func applyCredits(m *search.MovieDoc, credits []credit) {
	m.Director = []string{}
	m.ActorsNames = []string{}
	m.WritersNames = []string{}
	m.Actors = []search.PersonInMovie{}
	m.Writers = []search.PersonInMovie{}
	if m.Genre == nil {
		m.Genre = []string{}
	}

	for _, c := range credits {
		switch domain.Role(c.Role) {
		case domain.RoleActor:
			m.Actors = append(m.Actors, search.PersonInMovie{ID: c.ID, Name: c.Name})
			m.ActorsNames = append(m.ActorsNames, c.Name)
		case domain.RoleWriter:
			m.Writers = append(m.Writers, search.PersonInMovie{ID: c.ID, Name: c.Name})
			m.WritersNames = append(m.WritersNames, c.Name)
		case domain.RoleDirector:
			m.Director = append(m.Director, c.Name)
		}
	}
}
