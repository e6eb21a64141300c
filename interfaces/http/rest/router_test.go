package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contactkeeper/application/services"
	"contactkeeper/domain/contact"
	"contactkeeper/infrastructure/config"
	"contactkeeper/infrastructure/persistence/memory"
	"contactkeeper/pkg/auth"
	"contactkeeper/pkg/common"
)

// newTestHandler wires the full router against in-memory repositories
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Port:        5000,
		Environment: "development",
		JWTSecret:   "test-secret",
		JWTIssuer:   "contactkeeper-test",
		JWTExpiry:   time.Hour,
	}

	logger := zap.NewNop()
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry)
	require.NoError(t, err)

	contactSvc := services.NewContactService(memory.NewContactRepository(), logger)
	userSvc := services.NewUserService(memory.NewUserRepository(), tokens, logger)

	return NewRouter(cfg, contactSvc, userSvc, tokens, nil, logger).Setup()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// registerUser creates an account and returns its bearer token
func registerUser(t *testing.T, h http.Handler, name, email string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	h := newTestHandler(t)
	registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = doJSON(t, h, http.MethodGet, "/api/auth", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var current struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	assert.Equal(t, "Alice", current.Name)
	assert.Equal(t, "a@x.com", current.Email)
	// The password hash never leaves the server
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginBadCredentials(t *testing.T) {
	h := newTestHandler(t)
	registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestContactsRequireToken(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/contacts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp common.MsgResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No token, authorisation denied", resp.Msg)
}

func TestContactsRejectGarbageToken(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/contacts", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is not valid")
}

func TestContactCreateAndList(t *testing.T) {
	h := newTestHandler(t)
	token := registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", token, map[string]string{
		"name":  "Bob",
		"email": "b@x.com",
		"phone": "555-0100",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Bob", created.Name)
	assert.Equal(t, contact.TypePersonal, created.Type)

	rec = doJSON(t, h, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []*contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestContactCreateEmptyName(t *testing.T) {
	h := newTestHandler(t)
	token := registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", token, map[string]string{
		"name": "",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp common.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "name", resp.Errors[0].Field)
}

func TestContactListIsPerUser(t *testing.T) {
	h := newTestHandler(t)
	alice := registerUser(t, h, "Alice", "a@x.com")
	bob := registerUser(t, h, "Bob", "b@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", alice, map[string]string{"name": "Carol"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/contacts", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []*contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestContactPartialUpdate(t *testing.T) {
	h := newTestHandler(t)
	token := registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", token, map[string]string{
		"name":  "Bob",
		"email": "b@x.com",
		"phone": "555-0100",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodPut, "/api/contacts/"+created.ID.String(), token, map[string]string{
		"phone": "555-0199",
		"type":  "professional",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Bob", updated.Name)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, contact.TypeProfessional, updated.Type)
}

func TestContactUpdateNotOwner(t *testing.T) {
	h := newTestHandler(t)
	alice := registerUser(t, h, "Alice", "a@x.com")
	mallory := registerUser(t, h, "Mallory", "m@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", alice, map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodPut, "/api/contacts/"+created.ID.String(), mallory, map[string]string{
		"name": "Stolen",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The record is unchanged for its owner
	rec = doJSON(t, h, http.MethodGet, "/api/contacts", alice, nil)
	var listed []*contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Bob", listed[0].Name)
}

func TestContactUpdateUnknownID(t *testing.T) {
	h := newTestHandler(t)
	token := registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPut, "/api/contacts/missing", token, map[string]string{
		"name": "Nobody",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactDelete(t *testing.T) {
	h := newTestHandler(t)
	token := registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", token, map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodDelete, "/api/contacts/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp common.MsgResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Contact deleted", resp.Msg)

	rec = doJSON(t, h, http.MethodGet, "/api/contacts", token, nil)
	var listed []*contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestContactDeleteNotOwner(t *testing.T) {
	h := newTestHandler(t)
	alice := registerUser(t, h, "Alice", "a@x.com")
	mallory := registerUser(t, h, "Mallory", "m@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/contacts", alice, map[string]string{"name": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h, http.MethodDelete, "/api/contacts/"+created.ID.String(), mallory, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/contacts", alice, nil)
	var listed []*contact.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestHandler(t)
	registerUser(t, h, "Alice", "a@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Other Alice",
		"email":    "a@x.com",
		"password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
}
