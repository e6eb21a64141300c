package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactkeeper/domain/contact"
)

func TestAPIClientGetContacts(t *testing.T) {
	alice := newTestContact("a", "Alice", "a@x.com")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/contacts", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]*contact.Contact{alice})
	}))
	defer server.Close()

	store := NewStore()
	api := NewAPIClient(server.URL, store)
	api.SetToken("test-token")

	require.NoError(t, api.GetContacts(context.Background()))

	state := store.State()
	require.Len(t, state.Contacts, 1)
	assert.Equal(t, contact.ID("a"), state.Contacts[0].ID)
	assert.False(t, state.Loading)
}

func TestAPIClientAddContactPrepends(t *testing.T) {
	bob := newTestContact("b", "Bob", "b@x.com")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var in ContactInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Bob", in.Name)

		json.NewEncoder(w).Encode(bob)
	}))
	defer server.Close()

	store := NewStore()
	store.Dispatch(GetContacts{Contacts: []*contact.Contact{newTestContact("a", "Alice", "a@x.com")}})

	api := NewAPIClient(server.URL, store)
	require.NoError(t, api.AddContact(context.Background(), ContactInput{Name: "Bob"}))

	state := store.State()
	require.Len(t, state.Contacts, 2)
	assert.Equal(t, contact.ID("b"), state.Contacts[0].ID)
}

func TestAPIClientDeleteContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/contacts/a", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Contact deleted"})
	}))
	defer server.Close()

	store := NewStore()
	store.Dispatch(GetContacts{Contacts: contactsFixture()})

	api := NewAPIClient(server.URL, store)
	require.NoError(t, api.DeleteContact(context.Background(), contact.ID("a")))

	state := store.State()
	require.Len(t, state.Contacts, 1)
	assert.Equal(t, contact.ID("b"), state.Contacts[0].ID)
}

func TestAPIClientFailureDispatchesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "Token is not valid"})
	}))
	defer server.Close()

	store := NewStore()
	api := NewAPIClient(server.URL, store)

	err := api.GetContacts(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Token is not valid", store.State().Err)
	// No optimistic update: the list is untouched on failure
	assert.Nil(t, store.State().Contacts)
}

func TestAPIClientValidationErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"field": "name", "msg": "Please enter a name"}},
		})
	}))
	defer server.Close()

	store := NewStore()
	api := NewAPIClient(server.URL, store)

	err := api.AddContact(context.Background(), ContactInput{})
	require.Error(t, err)
	assert.Equal(t, "Please enter a name", store.State().Err)
}

func TestAPIClientLogoutClearsView(t *testing.T) {
	store := NewStore()
	store.Dispatch(GetContacts{Contacts: contactsFixture()})

	api := NewAPIClient("http://localhost", store)
	api.Logout()

	state := store.State()
	assert.Nil(t, state.Contacts)
	assert.Nil(t, state.Filtered)
	assert.Nil(t, state.Current)
}
