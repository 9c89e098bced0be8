// Package postgres implements the product and gallery repos using PostgreSQL
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivhu/farmstand"
)

// ProductRepo implements farmstand.ProductRepo over a PostgreSQL table.
type ProductRepo struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewProductRepo creates a ProductRepo. Table names must validate; they are
// interpolated into queries.
func NewProductRepo(pool *pgxpool.Pool, tables farmstand.Tables) (*ProductRepo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new product repo: %w", err)
	}
	return &ProductRepo{pool: pool, tableName: tables.Products}, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]farmstand.Product, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, name, category, price, unit, COALESCE(img, '') FROM %s`, r.tableName)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]farmstand.Product, 0)
	for rows.Next() {
		var p farmstand.Product
		if scanErr := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Unit, &p.Img); scanErr != nil {
			return nil, fmt.Errorf("list products: scan: %w", scanErr)
		}
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
		VALUES ($1, $2, $3, $4, $5, $6)`, r.tableName)

	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Category, p.Price, p.Unit, p.Img)
	if err != nil {
		return fmt.Errorf("add product: %w", err)
	}

	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE id = $1`, r.tableName)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete product: %w", farmstand.ErrNotFound)
	}

	return nil
}

// GalleryRepo implements farmstand.GalleryRepo over a PostgreSQL table.
type GalleryRepo struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewGalleryRepo creates a GalleryRepo.
func NewGalleryRepo(pool *pgxpool.Pool, tables farmstand.Tables) (*GalleryRepo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new gallery repo: %w", err)
	}
	return &GalleryRepo{pool: pool, tableName: tables.Gallery}, nil
}

func (r *GalleryRepo) List(ctx context.Context) ([]farmstand.GalleryItem, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, src, COALESCE(caption, '') FROM %s`, r.tableName)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer rows.Close()

	items := make([]farmstand.GalleryItem, 0)
	for rows.Next() {
		var item farmstand.GalleryItem
		if scanErr := rows.Scan(&item.ID, &item.Src, &item.Caption); scanErr != nil {
			return nil, fmt.Errorf("list gallery: scan: %w", scanErr)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gallery: rows: %w", err)
	}

	return items, nil
}

func (r *GalleryRepo) Get(ctx context.Context, id string) (farmstand.GalleryItem, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, src, COALESCE(caption, '') FROM %s WHERE id = $1`, r.tableName)

	var item farmstand.GalleryItem
	err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.Src, &item.Caption)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return farmstand.GalleryItem{}, farmstand.ErrNotFound
		}
		return farmstand.GalleryItem{}, fmt.Errorf("get gallery item: %w", err)
	}

	return item, nil
}

func (r *GalleryRepo) Add(ctx context.Context, item farmstand.GalleryItem) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (id, src, caption) VALUES ($1, $2, $3)`, r.tableName)

	_, err := r.pool.Exec(ctx, query, item.ID, item.Src, item.Caption)
	if err != nil {
		return fmt.Errorf("add gallery item: %w", err)
	}

	return nil
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE id = $1`, r.tableName)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete gallery item: %w", farmstand.ErrNotFound)
	}

	return nil
}
