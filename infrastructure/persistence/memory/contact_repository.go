package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"contactkeeper/application/ports"
	"contactkeeper/domain/contact"
	"contactkeeper/domain/user"
)

// ContactRepository is an in-memory ports.ContactRepository used in
// development mode and in tests. Map access is mutex-guarded; records are
// copied on the way in and out so callers never share memory with the
// store.
type ContactRepository struct {
	mu       sync.RWMutex
	contacts map[contact.ID]contact.Contact
}

// NewContactRepository creates an empty in-memory contact repository
func NewContactRepository() *ContactRepository {
	return &ContactRepository{
		contacts: make(map[contact.ID]contact.Contact),
	}
}

// Save persists a new contact
func (r *ContactRepository) Save(ctx context.Context, c *contact.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[c.ID] = *c
	return nil
}

// FindByID returns (nil, nil) when the id is unknown
func (r *ContactRepository) FindByID(ctx context.Context, id contact.ID) (*contact.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

// FindByUser returns all contacts owned by the user, newest first
func (r *ContactRepository) FindByUser(ctx context.Context, owner user.ID) ([]*contact.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := []*contact.Contact{}
	for _, c := range r.contacts {
		if c.UserID == owner {
			out := c
			found = append(found, &out)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})
	return found, nil
}

// Update applies a partial patch and returns the updated record. The whole
// operation holds the lock, giving the same per-record atomicity the real
// store provides.
func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact, patch contact.Update) (*contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.contacts[c.ID]
	if !ok {
		return nil, fmt.Errorf("contact %s no longer exists", c.ID)
	}
	if err := stored.Apply(patch); err != nil {
		return nil, err
	}
	r.contacts[c.ID] = stored

	out := stored
	return &out, nil
}

// Delete removes a contact permanently
func (r *ContactRepository) Delete(ctx context.Context, c *contact.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contacts, c.ID)
	return nil
}

var _ ports.ContactRepository = (*ContactRepository)(nil)
