package middlewares

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dropDatabas3/tienda/internal/http/errors"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
)

// WithRecover convierte un panic del handler en un 500 controlado. El stack
// queda en el log, nunca en la respuesta.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				logger.From(r.Context()).Error("panic recovered",
					logger.Op("recover"),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				errors.WriteError(w, errors.ErrInternal.WithDetail("panic recovered"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
