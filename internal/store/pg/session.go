package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

// sessionRepo implementa repository.SessionRepository.
type sessionRepo struct {
	db DB
}

// NewSessionRepo crea un nuevo repositorio de sesiones.
func NewSessionRepo(db DB) repository.SessionRepository {
	return &sessionRepo{db: db}
}

const sessionColumns = `id, user_id, token, created_at, expires_at`

func scanSession(row pgx.Row) (*repository.Session, error) {
	var s repository.Session
	err := row.Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt, &s.ExpiresAt)
	if err == pgx.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &s, nil
}

// Create inserta una nueva sesión. expires_at es NOT NULL a nivel schema:
// una sesión sin expiración es inaceptable.
func (r *sessionRepo) Create(ctx context.Context, input repository.CreateSessionInput) (*repository.Session, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO sessions (id, user_id, token, created_at, expires_at)
		VALUES ($1, $2, $3, NOW(), $4)
		RETURNING `+sessionColumns,
		input.ID, input.UserID, input.Token, input.ExpiresAt,
	)
	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// GetByID obtiene una sesión por id.
func (r *sessionRepo) GetByID(ctx context.Context, id string) (*repository.Session, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// GetByToken obtiene una sesión por el digest de su token.
func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*repository.Session, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE token = $1`, token)
	s, err := scanSession(row)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get session by token: %w", err)
	}
	return s, nil
}

// Delete elimina una sesión. Idempotente: 0 filas afectadas no es error.
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired elimina sesiones ya vencidas.
func (r *sessionRepo) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
