package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-signing-key"

func mintToken(t *testing.T, key string, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	v := NewValidator(testKey)

	t.Run("valid token yields the subject as principal", func(t *testing.T) {
		raw := mintToken(t, testKey, jwt.RegisteredClaims{
			Subject:   "auth0|abc123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		claims, err := v.ValidateToken(raw)
		require.NoError(t, err)
		assert.Equal(t, "auth0|abc123", claims.Principal)
	})

	t.Run("wrong signing key is rejected", func(t *testing.T) {
		raw := mintToken(t, "other-key", jwt.RegisteredClaims{Subject: "x"})

		_, err := v.ValidateToken(raw)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		raw := mintToken(t, testKey, jwt.RegisteredClaims{
			Subject:   "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})

		_, err := v.ValidateToken(raw)
		assert.Error(t, err)
	})

	t.Run("missing subject is rejected", func(t *testing.T) {
		raw := mintToken(t, testKey, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		_, err := v.ValidateToken(raw)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := v.ValidateToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone,
			jwt.RegisteredClaims{Subject: "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.ValidateToken(unsigned)
		assert.Error(t, err)
	})
}
