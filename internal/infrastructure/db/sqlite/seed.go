package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// defaultCategories are seeded as shared (NULL owner) rows at bootstrap.
var defaultCategories = []string{
	"Eat & Drink",
	"Rent",
	"Transportation",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Healthcare",
	"Education",
}

// SeedSharedCategories inserts any default shared category not already
// present. Safe to run on every startup; existing names are left alone.
func SeedSharedCategories(ctx context.Context, gw *Gateway) error {
	return gw.Execute(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT name FROM categories WHERE user_id IS NULL")
		if err != nil {
			return fmt.Errorf("list shared categories: %w", err)
		}
		defer rows.Close()

		existing := make(map[string]bool)
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			existing[name] = true
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, name := range defaultCategories {
			if existing[name] {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO categories (user_id, name) VALUES (NULL, ?)", name,
			); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
		}
		return nil
	})
}
