package auth

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Codec firma y verifica el token de sesión (JWS compacto, HS256).
//
// El payload lleva únicamente el id de sesión ("sid") más los claims
// temporales estándar. Identidad, rol y demás estado mutable se resuelven
// frescos contra el Manager en cada request.
type Codec struct {
	secret []byte
	issuer string
}

// NewCodec crea un Codec con el secreto del servidor.
func NewCodec(secret, issuer string) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer}
}

// Sign emite un token firmado que embebe solo el id de sesión.
// exp refleja la expiración absoluta de la sesión durable.
func (c *Codec) Sign(sessionID string, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"sid": sessionID,
		"iss": c.issuer,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": expiresAt.UTC().Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	return tk.SignedString(c.secret)
}

// Parse valida firma (HS256), iss y exp/nbf, y devuelve el id de sesión.
// Cualquier fallo colapsa en ErrTokenInvalid: un token malformado no revela
// por qué falló.
func (c *Codec) Parse(token string) (string, error) {
	tok, err := jwtv5.Parse(token,
		func(*jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithIssuer(c.issuer),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrTokenInvalid
	}
	return sid, nil
}
