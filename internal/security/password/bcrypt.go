// Package password encapsula el hashing de credenciales.
//
// Se usa bcrypt con costo configurable. El hash es one-way: el plaintext
// jamás se persiste ni se loguea.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost es el costo bcrypt por defecto.
const DefaultCost = 10

// Hash devuelve el hash bcrypt del plaintext con el costo dado.
// Costo fuera de rango cae al default de bcrypt.
func Hash(cost int, plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reporta si plain corresponde al hash almacenado.
// La comparación interna de bcrypt es de tiempo constante.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyVerify ejecuta una comparación bcrypt contra un hash fijo para
// igualar el timing cuando el usuario no existe. El resultado se descarta.
func DummyVerify(plain string) {
	// hash de una cadena aleatoria descartada, costo DefaultCost
	const dummy = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	_ = bcrypt.CompareHashAndPassword([]byte(dummy), []byte(plain))
}
