package repository

import "errors"

// Errores sentinela de los repositorios. Las capas de arriba los traducen
// a la taxonomía de auth o a códigos HTTP; acá no hay nada transport-aware.
var (
	// ErrNotFound: la entidad no existe o está soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrConflict: violación de unicidad (username/email ya tomados).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput: los datos no pasan las reglas de forma.
	ErrInvalidInput = errors.New("invalid input")
)
