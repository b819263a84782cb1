package repository

import (
	"context"
	"time"
)

// Session representa una sesión de usuario persistida.
// Es la fuente de verdad: la entrada de cache es una proyección descartable.
// ExpiresAt nunca es null (lo fuerza el schema): toda sesión expira.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reporta si la sesión ya pasó su expiración absoluta.
func (s *Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// CreateSessionInput contiene los datos para crear una sesión.
type CreateSessionInput struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// SessionRepository define operaciones sobre sesiones en el almacén durable.
type SessionRepository interface {
	// Create inserta una nueva sesión.
	Create(ctx context.Context, input CreateSessionInput) (*Session, error)

	// GetByID obtiene una sesión por id. No existe => ErrNotFound.
	GetByID(ctx context.Context, id string) (*Session, error)

	// GetByToken obtiene una sesión por el digest de su token (logout por
	// token).
	// No existe => ErrNotFound.
	GetByToken(ctx context.Context, token string) (*Session, error)

	// Delete elimina una sesión. Es idempotente: borrar una sesión
	// inexistente no es error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired elimina sesiones ya expiradas. Retorna cuántas borró.
	DeleteExpired(ctx context.Context) (int, error)
}
