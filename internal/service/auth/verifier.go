// Package auth verifies the bearer tokens that guard the admin API surface.
// Tokens are HMAC-SHA256 JWTs signed with the shared admin secret; this
// service only verifies, it never issues.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the verified claims extracted from an admin token.
type Claims struct {
	Subject string
}

// TokenVerifier validates admin bearer tokens.
type TokenVerifier interface {
	// Verify checks the token signature and time claims and returns the
	// claims on success. Returns ErrExpiredToken or ErrInvalidToken on
	// failure.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// hmacVerifier is a TokenVerifier using HMAC-SHA256 signing.
type hmacVerifier struct {
	signingKey []byte
	clockSkew  time.Duration
	timeFunc   func() time.Time // injectable for testing
}

// Ensure hmacVerifier implements TokenVerifier
var _ TokenVerifier = (*hmacVerifier)(nil)

// NewTokenVerifier creates a TokenVerifier for HMAC-SHA256 tokens signed
// with the given secret.
func NewTokenVerifier(secret string) (TokenVerifier, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("admin token secret must be at least 32 characters")
	}
	return &hmacVerifier{
		signingKey: []byte(secret),
		clockSkew:  2 * time.Minute, // tolerate minor clock drift between issuer and verifier
		timeFunc:   time.Now,
	}, nil
}

// Verify implements TokenVerifier.Verify.
func (v *hmacVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Claims{Subject: claims.Subject}, nil
}
