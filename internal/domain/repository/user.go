package repository

import (
	"context"
	"time"
)

// Role es el nivel de privilegio de un usuario. Orden total ascendente:
// a mayor valor, más privilegio. Las operaciones declaran un mínimo y el
// acceso se concede cuando role >= mínimo.
type Role int

const (
	// RoleRegular es el rol por defecto al registrarse.
	RoleRegular Role = 1
	// RoleAdmin es el rol con más privilegio.
	RoleAdmin Role = 2
)

// String devuelve el nombre del rol.
func (r Role) String() string {
	switch r {
	case RoleRegular:
		return "regular"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// AtLeast reporta si el rol satisface el mínimo requerido.
func (r Role) AtLeast(min Role) bool { return r >= min }

// User representa un usuario del sistema.
// PasswordHash es un hash bcrypt; el plaintext nunca se persiste ni se loguea.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Phone        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft-delete: marcado, nunca borrado físico
}

// CreateUserInput contiene los datos para registrar un usuario.
// El ID lo genera la aplicación (nunca el cliente ni la base).
type CreateUserInput struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Phone        *string
	Role         Role
}

// UserRepository define operaciones sobre usuarios.
// Todas las consultas excluyen usuarios soft-deleted.
type UserRepository interface {
	// CreateWithStore crea el usuario y su tienda en una sola transacción:
	// o existen ambas filas o ninguna. Username/email duplicado => ErrConflict.
	CreateWithStore(ctx context.Context, input CreateUserInput, storeID string) (*User, error)

	// GetByID obtiene un usuario por id. No existe => ErrNotFound.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByLogin obtiene un usuario cuyo username O email coincide con el
	// identificador. No existe => ErrNotFound.
	GetByLogin(ctx context.Context, identifier string) (*User, error)

	// ExistsByUsernameOrEmail reporta si ya hay un usuario con ese username o email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// SoftDelete marca el usuario como eliminado.
	SoftDelete(ctx context.Context, id string) error
}
