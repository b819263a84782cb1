// Package tokens genera identificadores opacos y digests para la capa de
// sesiones.
package tokens

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// GenerateOpaqueToken devuelve nBytes de azar en base64url sin padding.
func GenerateOpaqueToken(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewSessionID genera el id opaco de una sesión: 12 bytes de azar que
// codifican a exactamente 16 caracteres, el ancho del schema.
func NewSessionID() (string, error) {
	return GenerateOpaqueToken(12)
}

// SHA256Hex devuelve sha256(s) en hexadecimal. Es lo que se persiste en
// lugar del token firmado.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
