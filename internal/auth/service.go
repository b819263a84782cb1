package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
	"github.com/dropDatabas3/tienda/internal/security/password"
	"github.com/dropDatabas3/tienda/internal/validation"
)

// Notifier envía notificaciones post-registro. Best effort: un fallo de
// notificación nunca afecta el resultado del registro.
type Notifier interface {
	SendWelcome(ctx context.Context, email, username string) error
}

// Service orquesta registro, login, logout y resolución del caller.
type Service struct {
	users    repository.UserRepository
	verifier *Verifier
	sessions *Manager
	notifier Notifier // opcional
	cost     int      // costo bcrypt
}

// ServiceDeps contiene las dependencias del Service.
type ServiceDeps struct {
	Users    repository.UserRepository
	Verifier *Verifier
	Sessions *Manager
	Notifier Notifier // opcional, nil deshabilita notificaciones
	HashCost int
}

// NewService crea el servicio de autenticación.
func NewService(deps ServiceDeps) *Service {
	cost := deps.HashCost
	if cost <= 0 {
		cost = password.DefaultCost
	}
	return &Service{
		users:    deps.Users,
		verifier: deps.Verifier,
		sessions: deps.Sessions,
		notifier: deps.Notifier,
		cost:     cost,
	}
}

// RegisterInput contiene los datos de registro.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string // opcional
}

// RegisterResult es el resultado de un registro exitoso.
type RegisterResult struct {
	Identity Identity
	Token    string
	Session  *repository.Session
}

// Register crea usuario + tienda en una sola transacción y auto-emite una
// sesión. Username o email ya tomado => ErrConflict; si la creación de la
// tienda falla no queda fila de usuario (atomicidad del repositorio).
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.service"),
		logger.Op("Register"),
	)

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", repository.ErrInvalidInput)
	}
	if !validation.ValidUsername(username) {
		return nil, fmt.Errorf("%w: invalid username", repository.ErrInvalidInput)
	}
	if !validation.ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", repository.ErrInvalidInput)
	}
	if !validation.ValidPassword(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", repository.ErrInvalidInput, validation.MinPasswordLength)
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		log.Error("uniqueness check failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrBackingStore, err)
	}
	if taken {
		return nil, ErrConflict
	}

	hash, err := password.Hash(s.cost, input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrBackingStore, err)
	}

	var phone *string
	if p := strings.TrimSpace(input.Phone); p != "" {
		phone = &p
	}

	user, err := s.users.CreateWithStore(ctx, repository.CreateUserInput{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         repository.RoleRegular,
	}, uuid.NewString())
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Carrera entre el pre-chequeo y el INSERT: el constraint manda.
			return nil, ErrConflict
		}
		log.Error("registration failed", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrBackingStore, err)
	}

	log.Info("user registered", logger.UserID(user.ID), logger.Username(user.Username))

	if s.notifier != nil {
		go func(email, username string) {
			nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if nerr := s.notifier.SendWelcome(nctx, email, username); nerr != nil {
				logger.L().Warn("welcome notification failed",
					logger.Component("auth.service"), logger.Err(nerr))
			}
		}(user.Email, user.Username)
	}

	token, session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		// El usuario quedó creado; solo falló el auto-login.
		log.Error("auto-login after register failed", logger.Err(err), logger.UserID(user.ID))
		return nil, err
	}

	return &RegisterResult{
		Identity: Identity{UserID: user.ID, Username: user.Username, Role: user.Role},
		Token:    token,
		Session:  session,
	}, nil
}

// LoginResult es el resultado de un login exitoso.
type LoginResult struct {
	Identity Identity
	Token    string
	Session  *repository.Session
}

// Login valida credenciales y crea una sesión nueva.
func (s *Service) Login(ctx context.Context, identifier, plain string) (*LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.service"),
		logger.Op("Login"),
	)

	user, err := s.verifier.Verify(ctx, identifier, plain)
	if err != nil {
		return nil, err
	}

	token, session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Info("login ok", logger.UserID(user.ID))
	return &LoginResult{
		Identity: Identity{UserID: user.ID, Username: user.Username, Role: user.Role},
		Token:    token,
		Session:  session,
	}, nil
}

// Logout elimina la sesión asociada al token. Idempotente: un token
// desconocido o ya deslogueado no es error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// ResolveCaller verifica el token, resuelve la sesión (cache con repair,
// fallback durable) y carga la identidad fresca del dueño.
// Cualquier fallo de verificación o sesión ausente => ErrUnauthorized.
func (s *Service) ResolveCaller(ctx context.Context, token string) (*Identity, error) {
	sessionID, err := s.sessions.codec.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	userID, err := s.sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Usuario soft-deleted con sesión viva: tratar como revocado.
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", ErrBackingStore, err)
	}

	return &Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
