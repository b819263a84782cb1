package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_SignParse_RoundTrip(t *testing.T) {
	t.Parallel()
	codec := NewCodec("super-secret-key", "tienda")

	signed, err := codec.Sign("abc123def456ghi7", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	sid, err := codec.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "abc123def456ghi7", sid)
}

func TestCodec_Parse_UniformFailure(t *testing.T) {
	t.Parallel()
	codec := NewCodec("super-secret-key", "tienda")

	signed, err := codec.Sign("abc123def456ghi7", time.Now().Add(time.Hour))
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered payload", signed[:len(signed)-4] + "XXXX"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Parse(tc.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestCodec_Parse_WrongSecret(t *testing.T) {
	t.Parallel()
	signer := NewCodec("secret-a", "tienda")
	parser := NewCodec("secret-b", "tienda")

	signed, err := signer.Sign("abc123def456ghi7", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = parser.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_Parse_WrongIssuer(t *testing.T) {
	t.Parallel()
	signer := NewCodec("super-secret-key", "otro-servicio")
	parser := NewCodec("super-secret-key", "tienda")

	signed, err := signer.Sign("abc123def456ghi7", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = parser.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCodec_Parse_Expired(t *testing.T) {
	t.Parallel()
	codec := NewCodec("super-secret-key", "tienda")

	signed, err := codec.Sign("abc123def456ghi7", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
