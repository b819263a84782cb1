package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
	"github.com/dropDatabas3/tienda/internal/security/password"
)

// Verifier valida un identificador de login (username o email) y un
// password plano contra los hashes almacenados.
type Verifier struct {
	users repository.UserRepository
}

// NewVerifier crea un Verifier sobre el repositorio de usuarios.
func NewVerifier(users repository.UserRepository) *Verifier {
	return &Verifier{users: users}
}

// Verify devuelve el usuario si las credenciales son válidas.
//
// El fallo es uniforme: "usuario no existe" y "password incorrecto"
// producen ambos ErrInvalidCredentials, y cuando el usuario no existe se
// ejecuta igualmente una comparación bcrypt dummy para igualar el timing.
// El plaintext nunca se loguea.
func (v *Verifier) Verify(ctx context.Context, identifier, plain string) (*repository.User, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.verifier"),
		logger.Op("Verify"),
	)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plain == "" {
		password.DummyVerify(plain)
		return nil, ErrInvalidCredentials
	}

	user, err := v.users.GetByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			password.DummyVerify(plain)
			log.Debug("login identifier not found")
			return nil, ErrInvalidCredentials
		}
		log.Error("user lookup failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrBackingStore, err)
	}

	if !password.Verify(user.PasswordHash, plain) {
		log.Debug("password mismatch", logger.UserID(user.ID))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
