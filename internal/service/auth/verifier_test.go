package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "averylongadminsecretthatis32chars!!"

// signToken creates an HS256 token with the given subject and lifetime.
func signToken(t *testing.T, secret, subject string, lifetime time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewTokenVerifierRejectsShortSecret(t *testing.T) {
	_, err := NewTokenVerifier("tooshort")
	assert.Error(t, err)
}

func TestVerifyValidToken(t *testing.T) {
	v, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, "ops@example.com", time.Hour)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	v, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	// Expired beyond the clock-skew allowance.
	token := signToken(t, testSecret, "ops@example.com", -time.Hour)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	v, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, "adifferentsecretthatisalso32chars!!", "ops@example.com", time.Hour)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	v, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingToken(t *testing.T) {
	v, err := NewTokenVerifier(testSecret)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}
