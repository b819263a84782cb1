package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/tienda/internal/auth"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
	"github.com/dropDatabas3/tienda/internal/http/errors"
)

// AuthConfig configura cómo se extrae el token de sesión del request.
type AuthConfig struct {
	// CookieName es el nombre de la cookie de sesión (típicamente "jwt").
	CookieName string
	// AllowBearer habilita además Authorization: Bearer <token>,
	// pensado para clientes no-navegador.
	AllowBearer bool
}

// extractToken busca el token firmado en la cookie de sesión y,
// si está habilitado, en el header Authorization.
func extractToken(r *http.Request, cfg AuthConfig) string {
	if cfg.CookieName != "" {
		if ck, err := r.Cookie(cfg.CookieName); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	if cfg.AllowBearer {
		ah := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
			return strings.TrimSpace(ah[7:])
		}
	}
	return ""
}

// RequireAuth resuelve la identidad del llamador a partir del token de sesión
// y la guarda en el contexto. Si el token falta, es inválido, la sesión expiró
// o el usuario fue borrado, responde 401 sin distinguir el motivo.
func RequireAuth(svc *auth.Service, cfg AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cfg)
			if token == "" {
				errors.WriteError(w, errors.ErrUnauthorized)
				return
			}

			id, err := svc.ResolveCaller(r.Context(), token)
			if err != nil {
				errors.WriteError(w, err)
				return
			}

			ctx := withIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole verifica que la identidad del contexto tenga al menos el rol
// indicado. Debe usarse después de RequireAuth.
func RequireRole(min repository.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(GetIdentity(r.Context()), min); err != nil {
				errors.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
