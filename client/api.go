package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"contactkeeper/domain/contact"
)

// APIClient talks to the ContactKeeper REST API on behalf of one session
// and reconciles the store with the results: each call dispatches a
// success action carrying the server's response, or ContactError on
// failure. There are no optimistic updates, no retries and no request
// deduplication; the store stays usable while a call is in flight, so
// callers typically run these methods off the UI goroutine.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
	store   *Store
}

// NewAPIClient creates a client for the API at baseURL, dispatching into
// the given store
func NewAPIClient(baseURL string, store *Store) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    http.DefaultClient,
		store:   store,
	}
}

// SetToken installs the bearer credential used on subsequent requests
func (c *APIClient) SetToken(token string) {
	c.token = token
}

// Logout discards the session's view
func (c *APIClient) Logout() {
	c.token = ""
	c.store.Dispatch(ClearContacts{})
}

// ContactInput is the client-side shape of a create or update body
type ContactInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Type  string `json:"type,omitempty"`
}

// GetContacts fetches the caller's contacts and replaces the store's list
func (c *APIClient) GetContacts(ctx context.Context) error {
	var contacts []*contact.Contact
	if err := c.do(ctx, http.MethodGet, "/api/contacts", nil, &contacts); err != nil {
		return err
	}
	c.store.Dispatch(GetContacts{Contacts: contacts})
	return nil
}

// AddContact creates a contact and prepends the server's copy to the list
func (c *APIClient) AddContact(ctx context.Context, in ContactInput) error {
	var created contact.Contact
	if err := c.do(ctx, http.MethodPost, "/api/contacts", in, &created); err != nil {
		return err
	}
	c.store.Dispatch(AddContact{Contact: &created})
	return nil
}

// UpdateContact patches a contact and swaps the server's copy into the list
func (c *APIClient) UpdateContact(ctx context.Context, id contact.ID, in ContactInput) error {
	var updated contact.Contact
	path := fmt.Sprintf("/api/contacts/%s", id)
	if err := c.do(ctx, http.MethodPut, path, in, &updated); err != nil {
		return err
	}
	c.store.Dispatch(UpdateContact{Contact: &updated})
	return nil
}

// DeleteContact removes a contact and drops it from the list
func (c *APIClient) DeleteContact(ctx context.Context, id contact.ID) error {
	path := fmt.Sprintf("/api/contacts/%s", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.store.Dispatch(DeleteContact{ID: id})
	return nil
}

// do performs one request. Any failure, transport or HTTP, is dispatched
// as ContactError and returned.
func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return c.fail(err.Error())
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.fail(err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(errorMessage(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return c.fail(err.Error())
		}
	}
	return nil
}

func (c *APIClient) fail(msg string) error {
	c.store.Dispatch(ContactError{Message: msg})
	return fmt.Errorf("%s", msg)
}

// errorMessage extracts a display message from an error response body:
// either {"msg": ...} or the first of {"errors": [{..., "msg": ...}]}.
func errorMessage(resp *http.Response) string {
	var body struct {
		Msg    string `json:"msg"`
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Msg != "" {
			return body.Msg
		}
		if len(body.Errors) > 0 && body.Errors[0].Msg != "" {
			return body.Errors[0].Msg
		}
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
