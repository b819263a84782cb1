package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

// userRepo implementa repository.UserRepository.
type userRepo struct {
	db DB
}

// NewUserRepo crea un nuevo repositorio de usuarios.
func NewUserRepo(db DB) repository.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, password_hash, phone, role, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Phone,
		&u.Role, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// CreateWithStore inserta usuario y tienda en una sola transacción:
// o existen ambas filas o ninguna.
func (r *userRepo) CreateWithStore(ctx context.Context, input repository.CreateUserInput, storeID string) (*repository.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var u repository.User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+userColumns,
		input.ID, input.Username, input.Email, input.PasswordHash, input.Phone, input.Role,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Phone,
		&u.Role, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO stores (id, owner_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())`,
		storeID, u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &u, nil
}

// GetByID obtiene un usuario por id, excluyendo soft-deleted.
func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByLogin obtiene un usuario cuyo username O email coincide.
func (r *userRepo) GetByLogin(ctx context.Context, identifier string) (*repository.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE (username = $1 OR email = lower($1)) AND deleted_at IS NULL`, identifier)
	u, err := scanUser(row)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return u, nil
}

// ExistsByUsernameOrEmail reporta si username o email ya están tomados.
// Incluye soft-deleted: un username histórico no se recicla.
func (r *userRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

// SoftDelete marca el usuario como eliminado (no borra la fila).
func (r *userRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}
