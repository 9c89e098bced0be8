// Package sqlite implements the product and gallery repos using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ivhu/farmstand"
)

// ProductRepo implements farmstand.ProductRepo over a SQLite table.
type ProductRepo struct {
	db        *sql.DB
	tableName string
}

// NewProductRepo creates a ProductRepo. Table names must validate; they are
// interpolated into queries.
func NewProductRepo(db *sql.DB, tables farmstand.Tables) (*ProductRepo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new product repo: %w", err)
	}
	return &ProductRepo{db: db, tableName: tables.Products}, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]farmstand.Product, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, name, category, price, unit, img FROM %s`, r.tableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]farmstand.Product, 0)
	for rows.Next() {
		var p farmstand.Product
		var img sql.NullString

		if scanErr := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Unit, &img); scanErr != nil {
			return nil, fmt.Errorf("list products: scan: %w", scanErr)
		}
		p.Img = img.String
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: rows: %w", err)
	}

	return products, nil
}

func (r *ProductRepo) Add(ctx context.Context, p farmstand.Product) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (id, name, category, price, unit, img)
		VALUES (?, ?, ?, ?, ?, ?)`, r.tableName)

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Category, p.Price, p.Unit, p.Img)
	if err != nil {
		return fmt.Errorf("add product: %w", err)
	}

	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE id = ?`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("delete product: %w", farmstand.ErrNotFound)
	}

	return nil
}

// GalleryRepo implements farmstand.GalleryRepo over a SQLite table.
type GalleryRepo struct {
	db        *sql.DB
	tableName string
}

// NewGalleryRepo creates a GalleryRepo.
func NewGalleryRepo(db *sql.DB, tables farmstand.Tables) (*GalleryRepo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new gallery repo: %w", err)
	}
	return &GalleryRepo{db: db, tableName: tables.Gallery}, nil
}

func (r *GalleryRepo) List(ctx context.Context) ([]farmstand.GalleryItem, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, src, caption FROM %s`, r.tableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]farmstand.GalleryItem, 0)
	for rows.Next() {
		var item farmstand.GalleryItem
		var caption sql.NullString

		if scanErr := rows.Scan(&item.ID, &item.Src, &caption); scanErr != nil {
			return nil, fmt.Errorf("list gallery: scan: %w", scanErr)
		}
		item.Caption = caption.String
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gallery: rows: %w", err)
	}

	return items, nil
}

func (r *GalleryRepo) Get(ctx context.Context, id string) (farmstand.GalleryItem, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, src, caption FROM %s WHERE id = ?`, r.tableName)

	var item farmstand.GalleryItem
	var caption sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Src, &caption)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return farmstand.GalleryItem{}, farmstand.ErrNotFound
		}
		return farmstand.GalleryItem{}, fmt.Errorf("get gallery item: %w", err)
	}
	item.Caption = caption.String

	return item, nil
}

func (r *GalleryRepo) Add(ctx context.Context, item farmstand.GalleryItem) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (id, src, caption) VALUES (?, ?, ?)`, r.tableName)

	_, err := r.db.ExecContext(ctx, query, item.ID, item.Src, item.Caption)
	if err != nil {
		return fmt.Errorf("add gallery item: %w", err)
	}

	return nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE id = ?`, r.tableName)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete gallery item: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("delete gallery item: %w", farmstand.ErrNotFound)
	}

	return nil
}
