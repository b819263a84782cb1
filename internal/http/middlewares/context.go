package middlewares

import (
	"context"

	"github.com/dropDatabas3/tienda/internal/auth"
)

type ctxKey string

const (
	// ctxIdentityKey guarda la identidad del llamador autenticado
	ctxIdentityKey ctxKey = "identity"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// withIdentity inyecta la identidad resuelta en el contexto (interno).
func withIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey, id)
}

// GetIdentity obtiene la identidad del contexto.
// Retorna nil si no hay identidad (token no validado o middleware no aplicado).
func GetIdentity(ctx context.Context) *auth.Identity {
	if v := ctx.Value(ctxIdentityKey); v != nil {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

// MustGetIdentity obtiene la identidad o hace panic.
// Usar solo en rutas donde WithAuth SIEMPRE se aplica.
func MustGetIdentity(ctx context.Context) *auth.Identity {
	id := GetIdentity(ctx)
	if id == nil {
		panic("middlewares: no identity in context")
	}
	return id
}

// setRequestID inyecta el request ID en el contexto (interno).
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
