package auth

import "errors"

// Taxonomía de errores del núcleo de autenticación. La capa HTTP los mapea
// a status codes; ningún detalle de storage se expone al cliente.
var (
	// ErrInvalidCredentials cubre tanto "usuario no existe" como "password
	// incorrecto": el caller no puede distinguirlos.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict indica username o email ya tomado en el registro.
	ErrConflict = errors.New("username or email already taken")

	// ErrUnauthorized indica token ausente, malformado, expirado o revocado.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indica caller válido pero con rol insuficiente.
	ErrForbidden = errors.New("forbidden")

	// ErrSessionNotFound es la señal autoritativa de sesión inválida o
	// revocada: el almacén durable no tiene la fila.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTokenInvalid es el error uniforme de verificación de tokens:
	// firma inválida, claims malformados o expiración vencida.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrBackingStore indica fallo o timeout de base de datos o cache.
	// Se reporta al caller como error interno genérico.
	ErrBackingStore = errors.New("backing store failure")
)
