package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/catalog-service/internal/search"
)

func (r *Repository) Persons(ctx context.Context, limit, offset int) ([]search.PersonDoc, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, full_name
		FROM content.person
		ORDER BY id
		LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	var items []search.PersonDoc
	for rows.Next() {
		var p search.PersonDoc
		if err := rows.Scan(&p.ID, &p.FullName); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over persons: %w", err)
	}
	return items, nil
}
