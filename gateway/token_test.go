package gateway_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/restaurant-console/gateway"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenSubject(t *testing.T) {
	t.Run("numeric user_id", func(t *testing.T) {
		sub, err := gateway.TokenSubject(signed(t, jwt.MapClaims{"user_id": 42}))
		require.NoError(t, err)
		require.Equal(t, "42", sub)
	})

	t.Run("sub claim", func(t *testing.T) {
		sub, err := gateway.TokenSubject(signed(t, jwt.MapClaims{"sub": "u-1"}))
		require.NoError(t, err)
		require.Equal(t, "u-1", sub)
	})

	t.Run("no subject", func(t *testing.T) {
		_, err := gateway.TokenSubject(signed(t, jwt.MapClaims{"scope": "x"}))
		require.Error(t, err)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := gateway.TokenSubject("not-a-jwt")
		require.Error(t, err)
	})
}
