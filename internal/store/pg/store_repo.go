package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

// storeRepo implementa repository.StoreRepository.
// Las tiendas se crean junto al usuario (userRepo.CreateWithStore); este
// repo solo las lee.
type storeRepo struct {
	db DB
}

// NewStoreRepo crea un nuevo repositorio de tiendas.
func NewStoreRepo(db DB) repository.StoreRepository {
	return &storeRepo{db: db}
}

const storeColumns = `id, owner_id, created_at, updated_at, deleted_at`

func scanStore(row pgx.Row) (*repository.Store, error) {
	var s repository.Store
	err := row.Scan(&s.ID, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return &s, nil
}

// GetByOwner obtiene la tienda de un usuario.
func (r *storeRepo) GetByOwner(ctx context.Context, ownerID string) (*repository.Store, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+storeColumns+`
		FROM stores
		WHERE owner_id = $1 AND deleted_at IS NULL`, ownerID)
	s, err := scanStore(row)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get store by owner: %w", err)
	}
	return s, nil
}

// GetByID obtiene una tienda por id.
func (r *storeRepo) GetByID(ctx context.Context, id string) (*repository.Store, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+storeColumns+`
		FROM stores
		WHERE id = $1 AND deleted_at IS NULL`, id)
	s, err := scanStore(row)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}
