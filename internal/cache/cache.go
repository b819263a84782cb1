// Package cache define el tier volátil de la aplicación.
//
// Guarda proyecciones descartables (sesión -> dueño) detrás de una interfaz
// chica con dos backends: memoria (desarrollo y tests) y Redis (producción).
// El almacén durable es siempre la fuente de verdad; perder el cache nunca
// puede perder datos.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indica que la key no existe en el cache.
var ErrNotFound = errors.New("cache: key not found")

// IsNotFound reporta si err es un miss de cache.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Client es la interfaz común de los backends de cache.
type Client interface {
	// Get devuelve el valor de key, o ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda value bajo key. ttl 0 no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete elimina key. Borrar una key inexistente no es error.
	Delete(ctx context.Context, key string) error

	// Exists reporta si key existe.
	Exists(ctx context.Context, key string) (bool, error)

	// Ping verifica la conexión al backend.
	Ping(ctx context.Context) error

	// Close libera la conexión.
	Close() error

	// Stats devuelve contadores del backend.
	Stats(ctx context.Context) (Stats, error)
}

// Stats son contadores operacionales del cache.
type Stats struct {
	Driver     string
	Keys       int64
	UsedMemory string
	Hits       int64
	Misses     int64
}

// Config selecciona y configura el backend.
type Config struct {
	Driver   string // "memory" | "redis"
	Addr     string // host:puerto, solo redis
	Password string
	DB       int
	Prefix   string // prefijo aplicado a todas las keys
}

// New construye el backend indicado por Driver. Un driver desconocido o
// vacío cae a memoria.
func New(cfg Config) (Client, error) {
	if cfg.Driver == "redis" {
		return NewRedis(cfg)
	}
	return NewMemory(cfg.Prefix), nil
}
