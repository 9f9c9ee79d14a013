package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/search"
)

func (r *Repository) Genres(ctx context.Context, limit, offset int) ([]search.GenreDoc, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, COALESCE(description, '')
		FROM content.genre
		ORDER BY id
		LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var items []search.GenreDoc
	for rows.Next() {
		var g search.GenreDoc
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		items = append(items, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over genres: %w", err)
	}
	return items, nil
}
