// Package auth define los DTOs de registro, login y sesión.
package auth

// RegisterRequest es el request para registrar usuario + tienda.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest es el request de login. Identifier acepta username o email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SessionResponse es la respuesta de registro o login exitoso.
// El token también viaja en la cookie de sesión; se incluye en el body
// para clientes no-navegador.
type SessionResponse struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at"`
	User      UserInfo `json:"user"`
}

// UserInfo contiene la información pública del usuario autenticado.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MeResponse es la respuesta de GET /v1/auth/me.
type MeResponse struct {
	User UserInfo `json:"user"`
}
