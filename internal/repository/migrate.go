package repository

import (
	"context"
	"fmt"
	"os"
)

// Migrate executes a SQL file, e.g. migrations/content.up.sql.
func (r *Repository) Migrate(ctx context.Context, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := r.pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration %s: %w", path, err)
	}
	return nil
}
