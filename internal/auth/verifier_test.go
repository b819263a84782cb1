package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
	"github.com/dropDatabas3/tienda/internal/security/password"
)

func seedUser(t *testing.T, repo *fakeUserRepo, username, email, plain string) *repository.User {
	t.Helper()
	hash, err := password.Hash(password.DefaultCost, plain)
	require.NoError(t, err)
	u, err := repo.CreateWithStore(context.Background(), repository.CreateUserInput{
		ID:           "user-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         repository.RoleRegular,
	}, "store-"+username)
	require.NoError(t, err)
	return u
}

func TestVerifier_ValidCredentials(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "ana@example.com", "s3cret-pass")
	v := NewVerifier(repo)

	// Por username.
	u, err := v.Verify(context.Background(), "ana", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user-ana", u.ID)

	// Por email.
	u, err = v.Verify(context.Background(), "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user-ana", u.ID)

	// Con espacios alrededor del identificador.
	u, err = v.Verify(context.Background(), "  ana  ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "user-ana", u.ID)
}

func TestVerifier_UniformFailure(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "ana@example.com", "s3cret-pass")
	v := NewVerifier(repo)

	cases := []struct {
		name       string
		identifier string
		plain      string
	}{
		{"unknown user", "nadie", "s3cret-pass"},
		{"wrong password", "ana", "wrong-pass"},
		{"empty identifier", "", "s3cret-pass"},
		{"empty password", "ana", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := v.Verify(context.Background(), tc.identifier, tc.plain)
			assert.Nil(t, u)
			// Todos los fallos de credencial son indistinguibles.
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestVerifier_BackingStoreFailure(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	repo.lookupErr = errors.New("connection refused")
	v := NewVerifier(repo)

	_, err := v.Verify(context.Background(), "ana", "s3cret-pass")
	// Un fallo de infraestructura NO es credencial inválida.
	assert.ErrorIs(t, err, ErrBackingStore)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
