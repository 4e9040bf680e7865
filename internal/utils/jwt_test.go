// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateJWT(t *testing.T) {
	SetJWTSecret("test-secret")

	userID := uuid.New().String()
	signed := signTestToken(t, "test-secret", TokenClaims{
		Email: "dealer@example.com",
		Role:  "buyer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.Equal(t, "dealer@example.com", claims.Email)
	assert.Equal(t, "buyer", claims.Role)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")

	signed := signTestToken(t, "other-secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	SetJWTSecret("test-secret")

	signed := signTestToken(t, "test-secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTRequiresSubject(t *testing.T) {
	SetJWTSecret("test-secret")

	signed := signTestToken(t, "test-secret", TokenClaims{
		Email: "dealer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidateJWTChecksIssuerWhenConfigured(t *testing.T) {
	SetJWTSecret("test-secret")
	SetJWTIssuer("https://auth.example.com")
	t.Cleanup(func() { SetJWTIssuer("") })

	base := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	trusted := base
	trusted.Issuer = "https://auth.example.com"
	claims, err := ValidateJWT(signTestToken(t, "test-secret", TokenClaims{RegisteredClaims: trusted}))
	require.NoError(t, err)
	assert.Equal(t, base.Subject, claims.UserID())

	forged := base
	forged.Issuer = "https://evil.example.com"
	_, err = ValidateJWT(signTestToken(t, "test-secret", TokenClaims{RegisteredClaims: forged}))
	assert.Error(t, err)

	missing := base
	_, err = ValidateJWT(signTestToken(t, "test-secret", TokenClaims{RegisteredClaims: missing}))
	assert.Error(t, err, "an empty iss must not satisfy a pinned issuer")
}

func TestValidateJWTSkipsIssuerWhenUnset(t *testing.T) {
	SetJWTSecret("test-secret")
	SetJWTIssuer("")

	signed := signTestToken(t, "test-secret", TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			Issuer:    "https://anything.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := ValidateJWT(signed)
	assert.NoError(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
