// Package router define las rutas HTTP del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/dropDatabas3/tienda/internal/auth"
	"github.com/dropDatabas3/tienda/internal/domain/repository"
	authctrl "github.com/dropDatabas3/tienda/internal/http/controllers/auth"
	catalogctrl "github.com/dropDatabas3/tienda/internal/http/controllers/catalog"
	healthctrl "github.com/dropDatabas3/tienda/internal/http/controllers/health"
	mw "github.com/dropDatabas3/tienda/internal/http/middlewares"
	"github.com/dropDatabas3/tienda/internal/observability/metrics"
	"github.com/dropDatabas3/tienda/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	// Servicios y repositorios
	AuthService *authsvc.Service
	Stores      repository.StoreRepository
	Products    repository.ProductRepository

	// Configuración de sesión
	AuthConfig mw.AuthConfig
	Cookie     authctrl.CookieConfig

	// Opcionales
	LoginLimiter   rate.Limiter // nil deshabilita rate limiting de login
	MetricsHandler http.Handler // nil deshabilita /metrics
	Health         *healthctrl.Controller
}

// New construye el router chi con todas las rutas y middlewares.
func New(deps Deps) http.Handler {
	auth := authctrl.NewController(deps.AuthService, deps.Cookie)
	stores := catalogctrl.NewStoreController(deps.Stores)
	products := catalogctrl.NewProductController(deps.Products, deps.Stores)

	requireAuth := mw.RequireAuth(deps.AuthService, deps.AuthConfig)
	requireAdmin := mw.RequireRole(repository.RoleAdmin)
	loginLimit := mw.WithRateLimit(deps.LoginLimiter, mw.IPOnlyRateKey)

	r := chi.NewRouter()

	// Middlewares globales, del más externo al más interno.
	r.Use(metrics.WithHTTP)
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithRecover())
	r.Use(mw.WithSecurityHeaders())

	// Rutas públicas
	r.Group(func(r chi.Router) {
		r.Post("/v1/auth/register", auth.Register)
		r.With(loginLimit).Post("/v1/auth/login", auth.Login)
		r.Post("/v1/auth/logout", auth.Logout)

		r.Get("/v1/stores/{storeID}/products", products.ListByStore)
	})

	// Rutas autenticadas
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/v1/auth/me", auth.Me)
		r.Get("/v1/stores/me", stores.Me)
		r.Post("/v1/products", products.Create)

		// Solo admin
		r.With(requireAdmin).Delete("/v1/products/{productID}", products.Delete)
	})

	// Operacionales
	if deps.Health != nil {
		r.Get("/healthz", deps.Health.Healthz)
		r.Get("/readyz", deps.Health.Readyz)
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}
