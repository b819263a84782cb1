package validation

import (
	"net/mail"
	"regexp"
)

// Reglas de username:
//   - Solo minúsculas.
//   - Empieza y termina con [a-z0-9].
//   - En el medio admite [a-z0-9_.-].
//   - Longitud 3..32.
//   - Excluye espacios, mayúsculas y "@" (para no confundirse con un email
//     en el login por identificador).
//
// Válidos: ana, ana_42, tienda.norte, a-b
// Inválidos: Ana, _ana, ana_, "a", "an", ana@x, 33+ chars.
var usernameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{1,30}[a-z0-9]$`)

// ValidUsername reporta si el username cumple el patrón permitido.
func ValidUsername(name string) bool {
	return usernameRe.MatchString(name)
}

// ValidEmail reporta si el email tiene forma de dirección RFC 5322 simple
// (sin display name).
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// MinPasswordLength es el mínimo aceptado al registrarse.
const MinPasswordLength = 8

// ValidPassword reporta si el password cumple el largo mínimo. El máximo
// efectivo lo impone bcrypt (72 bytes).
func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= 72
}
