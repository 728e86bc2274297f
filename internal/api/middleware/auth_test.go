package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowledgeagent/internal/api/shared"
	"knowledgeagent/internal/service/auth"
)

const testSecret = "averylongadminsecretthatis32chars!!"

func signTestToken(t *testing.T, secret, subject string, lifetime time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// newProtectedHandler wraps a probe handler that records the admin subject.
func newProtectedHandler(t *testing.T) (http.Handler, *string) {
	t.Helper()
	verifier, err := auth.NewTokenVerifier(testSecret)
	require.NoError(t, err)

	var seenSubject string
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if subject, ok := r.Context().Value(shared.AdminSubjectKey).(string); ok {
			seenSubject = subject
		}
		w.WriteHeader(http.StatusOK)
	})

	return NewAuthMiddleware(verifier).Authenticate(probe), &seenSubject
}

func TestAuthenticateValidToken(t *testing.T) {
	handler, seenSubject := newProtectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/collections", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, testSecret, "ops@example.com", time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops@example.com", *seenSubject,
		"the verified subject should be placed in the request context")
}

func TestAuthenticateRejections(t *testing.T) {
	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"malformed token", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer "},
		{"expired token", "Bearer "},
	}

	handler, _ := newProtectedHandler(t)
	testCases[3].header += signTestToken(t, "adifferentsecretthatisalso32chars!!", "x", time.Hour)
	testCases[4].header += signTestToken(t, testSecret, "x", -time.Hour)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/collections", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
