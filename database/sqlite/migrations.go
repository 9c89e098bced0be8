package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ivhu/farmstand"
)

// quoteIdentifier safely quotes a SQLite identifier
func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

type tableMigration struct {
	tableName string
	up        func(ctx context.Context, db *sql.DB) error
	down      func(ctx context.Context, db *sql.DB) error
}

func getTableMigrations(tables farmstand.Tables) []tableMigration {
	return []tableMigration{
		{
			tableName: tables.Products,
			up:        createProductsTable(tables.Products),
			down:      dropTable(tables.Products),
		},
		{
			tableName: tables.Gallery,
			up:        createGalleryTable(tables.Gallery),
			down:      dropTable(tables.Gallery),
		},
	}
}

// Migrate creates the products and gallery tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB, tables farmstand.Tables) error {
	for _, migration := range getTableMigrations(tables) {
		if err := migration.up(ctx, db); err != nil {
			return fmt.Errorf("migrate up %s: %w", migration.tableName, err)
		}
	}
	return nil
}

// DropTables drops both tables, newest first. Test helper.
func DropTables(ctx context.Context, db *sql.DB, tables farmstand.Tables) error {
	migrations := getTableMigrations(tables)

	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if err := migration.down(ctx, db); err != nil {
			return fmt.Errorf("migrate down %s: %w", migration.tableName, err)
		}
	}

	return nil
}

func createProductsTable(tableName string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		createTableSQL := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT NOT NULL PRIMARY KEY,
				name TEXT NOT NULL,
				category TEXT NOT NULL,
				price REAL NOT NULL,
				unit TEXT NOT NULL,
				img TEXT
			)
		`, quoteIdentifier(tableName))

		if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
			return fmt.Errorf("create table: %w", err)
		}

		indexSQL := fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s ON %s (category)
		`, quoteIdentifier(fmt.Sprintf("idx_%s_category", tableName)), quoteIdentifier(tableName))

		if _, err := db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("create index category: %w", err)
		}

		return nil
	}
}

func createGalleryTable(tableName string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		createTableSQL := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT NOT NULL PRIMARY KEY,
				src TEXT NOT NULL,
				caption TEXT
			)
		`, quoteIdentifier(tableName))

		if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
			return fmt.Errorf("create table: %w", err)
		}

		return nil
	}
}

func dropTable(tableName string) func(context.Context, *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdentifier(tableName))

		_, err := db.ExecContext(ctx, dropSQL)
		return err
	}
}
