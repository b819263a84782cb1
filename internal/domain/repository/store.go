package repository

import (
	"context"
	"time"
)

// Store representa la tienda de un usuario. Relación 1:1 con User,
// creada atómicamente junto al usuario: un usuario sin tienda es una
// violación de invariante.
type Store struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// StoreRepository define operaciones sobre tiendas.
type StoreRepository interface {
	// GetByOwner obtiene la tienda de un usuario. No existe => ErrNotFound.
	GetByOwner(ctx context.Context, ownerID string) (*Store, error)

	// GetByID obtiene una tienda por id. No existe => ErrNotFound.
	GetByID(ctx context.Context, id string) (*Store, error)
}
