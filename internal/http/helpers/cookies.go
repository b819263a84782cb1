package helpers

import (
	"net/http"
	"strings"
	"time"
)

// ParseSameSite interpreta el valor de configuración. Default Lax, lo
// razonable para una cookie de sesión.
func ParseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func baseCookie(name, domain, sameSite string, secure bool) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: ParseSameSite(sameSite),
	}
	if d := strings.TrimSpace(domain); d != "" {
		ck.Domain = d
	}
	return ck
}

// BuildSessionCookie arma la cookie HttpOnly que transporta el token
// firmado. ttl 0 la deja como cookie de sesión de navegador.
func BuildSessionCookie(name, value, domain, sameSite string, secure bool, ttl time.Duration) *http.Cookie {
	ck := baseCookie(name, domain, sameSite, secure)
	ck.Value = value
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl).UTC()
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

// BuildDeletionCookie arma la cookie que invalida la sesión en el navegador.
func BuildDeletionCookie(name, domain, sameSite string, secure bool) *http.Cookie {
	ck := baseCookie(name, domain, sameSite, secure)
	ck.Expires = time.Unix(0, 0).UTC()
	ck.MaxAge = -1
	return ck
}
