package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contactkeeper/pkg/auth"
)

func authGuard(t *testing.T) (func(http.Handler) http.Handler, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret", "contactkeeper-test", time.Hour)
	require.NoError(t, err)
	return Authenticate(tokens, zap.NewNop()), tokens
}

func TestAuthenticatePassesIdentity(t *testing.T) {
	guard, tokens := authGuard(t)

	token, err := tokens.Generate("user-1", "a@x.com")
	require.NoError(t, err)

	var seen *auth.UserContext
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, "a@x.com", seen.Email)
}

func TestAuthenticateAcceptsBareToken(t *testing.T) {
	guard, tokens := authGuard(t)

	token, err := tokens.Generate("user-1", "")
	require.NoError(t, err)

	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateMissingToken(t *testing.T) {
	guard, _ := authGuard(t)

	called := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token, authorisation denied")
	assert.False(t, called)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	guard, _ := authGuard(t)

	called := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is not valid")
	assert.False(t, called)
}
