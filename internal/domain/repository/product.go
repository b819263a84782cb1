package repository

import (
	"context"
	"time"
)

// Product representa un producto publicado en una tienda (N:1).
type Product struct {
	ID          string
	StoreID     string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// CreateProductInput contiene los datos para publicar un producto.
type CreateProductInput struct {
	ID          string
	StoreID     string
	Title       string
	Description string
}

// ProductRepository define operaciones sobre productos.
type ProductRepository interface {
	// Create publica un producto en una tienda.
	Create(ctx context.Context, input CreateProductInput) (*Product, error)

	// GetByID obtiene un producto por id. No existe => ErrNotFound.
	GetByID(ctx context.Context, id string) (*Product, error)

	// ListByStore retorna los productos de una tienda, más recientes primero.
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]Product, error)

	// Delete marca un producto como eliminado (soft-delete, idempotente).
	Delete(ctx context.Context, id string) error
}
