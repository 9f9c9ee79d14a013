package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the catalog source of truth from the Postgres content
// schema and shapes rows into search documents.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// NewPool opens a pgx pool capped at poolSize connections.
func NewPool(ctx context.Context, url string, poolSize int) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if poolSize > 0 {
		poolConfig.MaxConns = int32(poolSize)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// Count rows in one of the content tables
func (r *Repository) Count(ctx context.Context, table string) (int, error) {
	switch table {
	case "film_work", "genre", "person":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM content."+table).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}
