package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/asif/userstore/internal/apperror"
	"github.com/asif/userstore/internal/model"
	"github.com/asif/userstore/internal/repository"
)

// Compile-time check that *DB implements repository.ProductRepository.
var _ repository.ProductRepository = (*DB)(nil)

// ListProducts returns every product record, empty slice when the table is
// empty.
func (db *DB) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, price, created_at, updated_at
		 FROM products
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}

// GetProductByID retrieves a single product.
// Returns apperror.ErrNotFound if the id is absent.
func (db *DB) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, description, price, created_at, updated_at
		 FROM products WHERE id = ?`,
		id,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", id)
		}
		return nil, fmt.Errorf("sqlite: getting product %s: %w", id, err)
	}

	return &p, nil
}

// CreateProduct inserts a new product, assigning an xid and timestamps in
// place. Products carry no uniqueness rule, so a plain INSERT suffices.
func (db *DB) CreateProduct(ctx context.Context, product *model.Product) error {
	now := time.Now()
	product.ID = xid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting product (name=%s): %w", product.Name, err)
	}

	return nil
}

// UpdateProduct replaces all mutable fields; RowsAffected doubles as the
// existence check, same pattern as the user store.
func (db *DB) UpdateProduct(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, description = ?, price = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name, product.Description, product.Price,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating product %s: %w", product.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("product", product.ID)
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT created_at FROM products WHERE id = ?`, product.ID,
	).Scan(&product.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: reading back product %s: %w", product.ID, err)
	}

	return nil
}

// DeleteProduct removes a product by ID.
func (db *DB) DeleteProduct(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM products WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting product %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("product", id)
	}

	return nil
}
