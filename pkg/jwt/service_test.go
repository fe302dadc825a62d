package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backendlab/httpkit/pkg/jwt"
)

type testClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty signing key", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.New("")
		require.ErrorIs(t, err, jwt.ErrEmptySigningKey)
	})
}

func TestGenerateParse(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.New("secret")
		require.NoError(t, err)

		token, err := svc.Generate(testClaims{UserID: "42", Role: "admin"})
		require.NoError(t, err)
		require.NotEmpty(t, token)

		var claims testClaims
		require.NoError(t, svc.Parse(token, &claims))
		assert.Equal(t, "42", claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("map claims round trip", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.New("secret")
		require.NoError(t, err)

		token, err := svc.Generate(map[string]any{"user_id": "7"})
		require.NoError(t, err)

		out := map[string]any{}
		require.NoError(t, svc.Parse(token, &out))
		assert.Equal(t, "7", out["user_id"])
		assert.Contains(t, out, "exp")
		assert.Contains(t, out, "iat")
	})

	t.Run("wrong key reports invalid signature", func(t *testing.T) {
		t.Parallel()

		signer, err := jwt.New("right-key")
		require.NoError(t, err)
		verifier, err := jwt.New("wrong-key")
		require.NoError(t, err)

		token, err := signer.Generate(testClaims{UserID: "42"})
		require.NoError(t, err)

		var claims testClaims
		require.ErrorIs(t, verifier.Parse(token, &claims), jwt.ErrInvalidSignature)
	})

	t.Run("expired token reports expiry", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.New("secret")
		require.NoError(t, err)

		token, err := svc.Generate(map[string]any{
			"user_id": "42",
			"exp":     time.Now().Add(-time.Minute).Unix(),
		})
		require.NoError(t, err)

		var claims testClaims
		require.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrExpiredToken)
	})

	t.Run("issuer mismatch is invalid", func(t *testing.T) {
		t.Parallel()

		signer, err := jwt.New("secret", jwt.WithIssuer("service-a"))
		require.NoError(t, err)
		verifier, err := jwt.New("secret", jwt.WithIssuer("service-b"))
		require.NoError(t, err)

		token, err := signer.Generate(testClaims{UserID: "42"})
		require.NoError(t, err)

		var claims testClaims
		require.ErrorIs(t, verifier.Parse(token, &claims), jwt.ErrInvalidToken)
	})

	t.Run("garbage input is invalid", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.New("secret")
		require.NoError(t, err)

		var claims testClaims
		require.ErrorIs(t, svc.Parse("not-a-token", &claims), jwt.ErrInvalidToken)
	})

	t.Run("rejects tokens signed with a foreign method", func(t *testing.T) {
		t.Parallel()

		unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{"user_id": "42"})
		token, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		svc, err := jwt.New("secret")
		require.NoError(t, err)

		var claims testClaims
		require.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrInvalidToken)
	})
}
