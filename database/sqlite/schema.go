package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ivhu/farmstand"
)

type columnInfo struct {
	dataType   string
	isNullable bool
}

var productsTableSchema = map[string]columnInfo{
	"id":       {"text", false},
	"name":     {"text", false},
	"category": {"text", false},
	"price":    {"real", false},
	"unit":     {"text", false},
	"img":      {"text", true},
}

var galleryTableSchema = map[string]columnInfo{
	"id":      {"text", false},
	"src":     {"text", false},
	"caption": {"text", true},
}

// ValidateSchema checks that both tables exist and match the expected column
// layout.
func ValidateSchema(ctx context.Context, db *sql.DB, tables farmstand.Tables) error {
	checks := []struct {
		tableName string
		schema    map[string]columnInfo
	}{
		{tables.Products, productsTableSchema},
		{tables.Gallery, galleryTableSchema},
	}

	for _, check := range checks {
		if err := validateTableSchema(ctx, db, check.tableName, check.schema); err != nil {
			return fmt.Errorf("validate schema %s: %w", check.tableName, err)
		}
	}

	return nil
}

func validateTableSchema(ctx context.Context, db *sql.DB, tableName string, expectedSchema map[string]columnInfo) error {
	if !farmstand.IsValidTableName(tableName) {
		return fmt.Errorf("invalid table name: %s", tableName)
	}

	exists, err := tableExists(ctx, db, tableName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("table %s does not exist", tableName)
	}

	// SQLite exposes column information through PRAGMA table_info
	query := fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdentifier(tableName))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	actualColumns := make(map[string]columnInfo)
	for rows.Next() {
		var cid int
		var name, dataType string
		var notNull int
		var dfltValue sql.NullString
		var pk int

		if err := rows.Scan(&cid, &name, &dataType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		actualColumns[name] = columnInfo{
			dataType:   strings.ToLower(dataType),
			isNullable: notNull == 0 && pk == 0,
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	var problems []string
	for colName, expected := range expectedSchema {
		actual, ok := actualColumns[colName]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing column %s", colName))
			continue
		}
		if actual.dataType != expected.dataType {
			problems = append(problems, fmt.Sprintf("%s: expected %s, got %s", colName, expected.dataType, actual.dataType))
		}
		if actual.isNullable != expected.isNullable {
			problems = append(problems, fmt.Sprintf("%s: expected nullable=%v, got nullable=%v", colName, expected.isNullable, actual.isNullable))
		}
	}

	if len(problems) > 0 {
		return errors.New("schema mismatch: " + strings.Join(problems, "; "))
	}

	return nil
}

func tableExists(ctx context.Context, db *sql.DB, tableName string) (bool, error) {
	var name string
	query := `SELECT name FROM sqlite_master WHERE type='table' AND name=?`
	err := db.QueryRowContext(ctx, query, tableName).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check table exists: %w", err)
	}
	return true, nil
}
