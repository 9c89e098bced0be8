package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivhu/farmstand"
)

// Migrate creates the products and gallery tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables farmstand.Tables) error {
	if err := tables.Validate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := createProductsTable(ctx, pool, tables.Products); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Products, err)
	}

	if err := createGalleryTable(ctx, pool, tables.Gallery); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Gallery, err)
	}

	return nil
}

// DropTables drops both tables. Test helper.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables farmstand.Tables) error {
	for _, tableName := range []string{tables.Gallery, tables.Products} {
		quotedTable := pgx.Identifier{tableName}.Sanitize()
		sql := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", quotedTable)
		if _, err := pool.Exec(ctx, sql); err != nil {
			return fmt.Errorf("migrate down %s: %w", tableName, err)
		}
	}
	return nil
}

func createProductsTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexCategory := pgx.Identifier{fmt.Sprintf("idx_%s_category", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT NOT NULL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL,
			img TEXT
		);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (category);
	`, quotedTable, indexCategory, quotedTable)

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func createGalleryTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT NOT NULL PRIMARY KEY,
			src TEXT NOT NULL,
			caption TEXT
		);
	`, quotedTable)

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create gallery table: %w", err)
	}
	return nil
}
