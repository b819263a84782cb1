package auth

import "github.com/dropDatabas3/tienda/internal/domain/repository"

// Identity es la identidad resuelta del caller para un request autenticado.
// Se construye fresca en cada request vía ResolveCaller: nunca viaja dentro
// del token.
type Identity struct {
	UserID   string
	Username string
	Role     repository.Role
}

// Allowed reporta si la identidad satisface el rol mínimo de una operación.
// Sin identidad => deny. Los roles forman un orden total ascendente
// (mayor valor = más privilegio) y el acceso se concede con role >= min.
func Allowed(id *Identity, min repository.Role) bool {
	if id == nil {
		return false
	}
	return id.Role.AtLeast(min)
}

// Authorize es la variante con error de Allowed: identidad ausente =>
// ErrUnauthorized, rol insuficiente => ErrForbidden.
// Debe correr siempre después de que la resolución de sesión produjo la
// identidad, nunca antes.
func Authorize(id *Identity, min repository.Role) error {
	if id == nil {
		return ErrUnauthorized
	}
	if !id.Role.AtLeast(min) {
		return ErrForbidden
	}
	return nil
}
