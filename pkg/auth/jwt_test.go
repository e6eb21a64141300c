package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", "contactkeeper-test", time.Hour)
	require.NoError(t, err)

	token, err := svc.Generate("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", "contactkeeper-test", time.Hour)
	assert.Error(t, err)
}

func TestValidateMissingToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", "contactkeeper-test", time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", "contactkeeper-test", -time.Minute)
	require.NoError(t, err)

	token, err := svc.Generate("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	signer, err := NewTokenService("secret-a", "contactkeeper-test", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", "contactkeeper-test", time.Hour)
	require.NoError(t, err)

	token, err := signer.Generate("user-1", "")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateWrongIssuer(t *testing.T) {
	signer, err := NewTokenService("test-secret", "someone-else", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService("test-secret", "contactkeeper", time.Hour)
	require.NoError(t, err)

	token, err := signer.Generate("user-1", "")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserInContext(context.Background(), &UserContext{UserID: "user-1", Email: "a@x.com"})

	user, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)

	_, err = GetUserFromContext(context.Background())
	assert.Error(t, err)
}
