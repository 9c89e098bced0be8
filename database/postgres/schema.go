package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

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
	"price":    {"double precision", false},
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
func ValidateSchema(ctx context.Context, pool *pgxpool.Pool, tables farmstand.Tables) error {
	checks := []struct {
		tableName string
		schema    map[string]columnInfo
	}{
		{tables.Products, productsTableSchema},
		{tables.Gallery, galleryTableSchema},
	}

	for _, check := range checks {
		if err := validateTableSchema(ctx, pool, check.tableName, check.schema); err != nil {
			return fmt.Errorf("validate schema %s: %w", check.tableName, err)
		}
	}

	return nil
}

func validateTableSchema(ctx context.Context, pool *pgxpool.Pool, tableName string, expectedSchema map[string]columnInfo) error {
	if !farmstand.IsValidTableName(tableName) {
		return fmt.Errorf("invalid table name: %s", tableName)
	}

	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
	`

	rows, err := pool.Query(ctx, query, tableName)
	if err != nil {
		return fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	actualColumns := make(map[string]columnInfo)
	for rows.Next() {
		var name, dataType, isNullable string

		if err := rows.Scan(&name, &dataType, &isNullable); err != nil {
			return fmt.Errorf("scan column: %w", err)
		}
		actualColumns[name] = columnInfo{
			dataType:   strings.ToLower(dataType),
			isNullable: isNullable == "YES",
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	if len(actualColumns) == 0 {
		return fmt.Errorf("table %s does not exist", tableName)
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
