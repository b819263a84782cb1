package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

// productRepo implementa repository.ProductRepository.
type productRepo struct {
	db DB
}

// NewProductRepo crea un nuevo repositorio de productos.
func NewProductRepo(db DB) repository.ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, store_id, title, description, created_at, updated_at, deleted_at`

// Create publica un producto en una tienda.
func (r *productRepo) Create(ctx context.Context, input repository.CreateProductInput) (*repository.Product, error) {
	var p repository.Product
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (id, store_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+productColumns,
		input.ID, input.StoreID, input.Title, input.Description,
	).Scan(&p.ID, &p.StoreID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por id.
func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	var p repository.Product
	err := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&p.ID, &p.StoreID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByStore retorna productos de una tienda, más recientes primero.
func (r *productRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]repository.Product, error) {
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE store_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []repository.Product
	for rows.Next() {
		var p repository.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete marca un producto como eliminado. Idempotente.
func (r *productRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
