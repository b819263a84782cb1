package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/tienda/internal/cache"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
	"github.com/dropDatabas3/tienda/internal/observability/metrics"
	tokens "github.com/dropDatabas3/tienda/internal/security/token"
)

// CacheKeySessionPrefix es el namespace de las entradas de sesión en cache.
const CacheKeySessionPrefix = "sessions:"

// Manager orquesta el ciclo de vida de sesiones sobre dos tiers:
// un cache rápido (session id -> user id, con TTL alineado a la expiración
// absoluta) y el almacén durable, que es siempre la fuente de verdad.
type Manager struct {
	sessions repository.SessionRepository
	cache    cache.Client
	codec    *Codec
	ttl      time.Duration
}

// ManagerDeps contiene las dependencias del Manager.
type ManagerDeps struct {
	Sessions repository.SessionRepository
	Cache    cache.Client
	Codec    *Codec
	TTL      time.Duration // vida de sesión; default 24h
}

// NewManager crea un Manager.
func NewManager(deps ManagerDeps) *Manager {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		sessions: deps.Sessions,
		cache:    deps.Cache,
		codec:    deps.Codec,
		ttl:      ttl,
	}
}

func sessionCacheKey(sessionID string) string {
	return CacheKeySessionPrefix + sessionID
}

// Create genera una sesión nueva para el usuario y devuelve el token firmado.
//
// Orden de escritura: primero la fila durable, después la entrada de cache.
// Así un Resolve concurrente que falle el cache siempre cae a un almacén al
// menos tan actualizado. Si cualquiera de las dos escrituras falla, la otra
// se deshace: una sesión nunca queda en un solo tier tras un Create fallido.
func (m *Manager) Create(ctx context.Context, userID string) (string, *repository.Session, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.sessions"),
		logger.Op("Create"),
	)

	sessionID, err := tokens.NewSessionID()
	if err != nil {
		return "", nil, fmt.Errorf("%w: generate session id: %v", ErrBackingStore, err)
	}

	expiresAt := time.Now().Add(m.ttl)
	signed, err := m.codec.Sign(sessionID, expiresAt)
	if err != nil {
		log.Error("token signing failed", logger.Err(err))
		return "", nil, fmt.Errorf("%w: sign token: %v", ErrBackingStore, err)
	}

	// La fila durable guarda el digest del token, no el token firmado:
	// una fuga de la tabla no permite rearmar cookies válidas.
	session, err := m.sessions.Create(ctx, repository.CreateSessionInput{
		ID:        sessionID,
		UserID:    userID,
		Token:     tokens.SHA256Hex(signed),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		log.Error("session insert failed", logger.Err(err))
		return "", nil, fmt.Errorf("%w: %v", ErrBackingStore, err)
	}

	if err := m.cache.Set(ctx, sessionCacheKey(sessionID), userID, time.Until(expiresAt)); err != nil {
		// Compensación: deshacer la fila durable para no dejar la sesión
		// viva en un solo tier.
		log.Error("session cache write failed, rolling back", logger.Err(err))
		if derr := m.sessions.Delete(ctx, sessionID); derr != nil {
			log.Error("session rollback failed", logger.Err(derr), logger.SessionID(sessionID))
		}
		_ = m.cache.Delete(ctx, sessionCacheKey(sessionID))
		return "", nil, fmt.Errorf("%w: %v", ErrBackingStore, err)
	}

	metrics.SessionCreated()
	log.Debug("session created", logger.UserID(userID), logger.SessionID(sessionID))
	return signed, session, nil
}

// Resolve devuelve el dueño de una sesión activa.
//
// Primero consulta el cache (fast path, sin tocar la base). En miss —o si el
// cache falla, que se absorbe como miss— cae al almacén durable: si la fila
// existe y no expiró, repara el cache con el TTL derivado de la expiración y
// devuelve el dueño. Fila ausente o expirada => ErrSessionNotFound, la señal
// autoritativa de sesión inválida o revocada. Una evicción de cache jamás
// desloguea a un usuario.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (string, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.sessions"),
		logger.Op("Resolve"),
	)

	key := sessionCacheKey(sessionID)
	userID, err := m.cache.Get(ctx, key)
	if err == nil && userID != "" {
		metrics.SessionCacheLookup(true)
		return userID, nil
	}
	metrics.SessionCacheLookup(false)
	if err != nil && !cache.IsNotFound(err) {
		// Cache caído no es fatal: degradación transparente al durable.
		log.Warn("session cache unavailable, falling back to store", logger.Err(err))
	}

	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrSessionNotFound
		}
		log.Error("session lookup failed", logger.Err(err))
		return "", fmt.Errorf("%w: %v", ErrBackingStore, err)
	}
	if session.Expired(time.Now()) {
		// Expiración lazy: la fila vencida equivale a "no existe".
		return "", ErrSessionNotFound
	}

	// Reparar el cache (best effort: si falla, el próximo Resolve vuelve
	// a caer al durable).
	if serr := m.cache.Set(ctx, key, session.UserID, time.Until(session.ExpiresAt)); serr != nil {
		log.Warn("session cache repair failed", logger.Err(serr))
	} else {
		log.Debug("session cache repaired", logger.SessionID(sessionID))
	}

	return session.UserID, nil
}

// DeleteByToken resuelve el token a un id de sesión (lookup durable por
// digest) y borra la sesión. Token desconocido => no-op silencioso.
func (m *Manager) DeleteByToken(ctx context.Context, token string) error {
	session, err := m.sessions.GetByToken(ctx, tokens.SHA256Hex(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBackingStore, err)
	}
	return m.Delete(ctx, session.ID)
}

// Delete elimina la entrada de cache y la fila durable concurrentemente.
// Es idempotente: borrar una sesión inexistente no es error.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := m.cache.Delete(gctx, sessionCacheKey(sessionID)); err != nil && !cache.IsNotFound(err) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return m.sessions.Delete(gctx, sessionID)
	})
	if err := g.Wait(); err != nil {
		logger.From(ctx).Error("session delete failed",
			logger.Component("auth.sessions"), logger.Err(err), logger.SessionID(sessionID))
		return fmt.Errorf("%w: %v", ErrBackingStore, err)
	}
	return nil
}

// TTL expone la vida de sesión configurada (para cookies).
func (m *Manager) TTL() time.Duration { return m.ttl }
