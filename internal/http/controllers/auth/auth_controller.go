// Package auth contiene los controllers HTTP de registro, login y sesión.
package auth

import (
	"net/http"
	"strings"
	"time"

	authsvc "github.com/dropDatabas3/tienda/internal/auth"
	dto "github.com/dropDatabas3/tienda/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/tienda/internal/http/errors"
	"github.com/dropDatabas3/tienda/internal/http/helpers"
	mw "github.com/dropDatabas3/tienda/internal/http/middlewares"
	"github.com/dropDatabas3/tienda/internal/observability/logger"
)

// CookieConfig describe la cookie de sesión que emiten login y registro.
type CookieConfig struct {
	Name     string
	Domain   string
	SameSite string
	Secure   bool
	TTL      time.Duration
}

// Controller maneja los endpoints de autenticación.
type Controller struct {
	service *authsvc.Service
	cookie  CookieConfig
}

// NewController crea el controller de autenticación.
func NewController(service *authsvc.Service, cookie CookieConfig) *Controller {
	return &Controller{service: service, cookie: cookie}
}

func userInfo(id authsvc.Identity) dto.UserInfo {
	return dto.UserInfo{
		ID:       id.UserID,
		Username: id.Username,
		Role:     id.Role.String(),
	}
}

// Register maneja POST /v1/auth/register.
// Crea usuario + tienda atómicamente y auto-emite una sesión.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("auth.Register"))

	var req dto.RegisterRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("username, email and password are required"))
		return
	}

	result, err := c.service.Register(ctx, authsvc.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	http.SetCookie(w, c.sessionCookie(result.Token))
	w.Header().Set("Cache-Control", "no-store")

	helpers.WriteJSON(w, http.StatusCreated, dto.SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt.UTC().Format(time.RFC3339),
		User:      userInfo(result.Identity),
	})

	log.Debug("user registered", logger.UserID(result.Identity.UserID))
}

// Login maneja POST /v1/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Identifier == "" || req.Password == "" {
		// No revelar cuál campo falta más allá de lo obvio: mismas
		// credenciales inválidas que un login fallido.
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
		return
	}

	result, err := c.service.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	http.SetCookie(w, c.sessionCookie(result.Token))
	w.Header().Set("Cache-Control", "no-store")

	helpers.WriteJSON(w, http.StatusOK, dto.SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt.UTC().Format(time.RFC3339),
		User:      userInfo(result.Identity),
	})
}

// Logout maneja POST /v1/auth/logout.
// Es idempotente: sesión ya borrada o token inválido también responden 204.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := ""
	if ck, err := r.Cookie(c.cookie.Name); err == nil {
		token = ck.Value
	}
	if token == "" {
		ah := strings.TrimSpace(r.Header.Get("Authorization"))
		if len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
			token = strings.TrimSpace(ah[7:])
		}
	}

	if err := c.service.Logout(ctx, token); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	http.SetCookie(w, helpers.BuildDeletionCookie(c.cookie.Name, c.cookie.Domain, c.cookie.SameSite, c.cookie.Secure))
	w.WriteHeader(http.StatusNoContent)
}

// Me maneja GET /v1/auth/me. Requiere RequireAuth.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	id := mw.MustGetIdentity(r.Context())
	helpers.WriteJSON(w, http.StatusOK, dto.MeResponse{User: userInfo(*id)})
}

func (c *Controller) sessionCookie(token string) *http.Cookie {
	return helpers.BuildSessionCookie(
		c.cookie.Name, token,
		c.cookie.Domain, c.cookie.SameSite,
		c.cookie.Secure, c.cookie.TTL,
	)
}
