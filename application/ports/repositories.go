package ports

import (
	"context"

	"contactkeeper/domain/contact"
	"contactkeeper/domain/user"
)

// ContactRepository persists contact records. Implementations delegate
// per-record atomicity to the underlying store; concurrent updates are
// last-writer-wins.
type ContactRepository interface {
	// Save persists a new contact
	Save(ctx context.Context, c *contact.Contact) error

	// FindByID retrieves a contact regardless of owner; ownership is
	// checked by the caller. Returns (nil, nil) when the id is unknown.
	FindByID(ctx context.Context, id contact.ID) (*contact.Contact, error)

	// FindByUser returns all contacts owned by the user, newest first
	FindByUser(ctx context.Context, owner user.ID) ([]*contact.Contact, error)

	// Update applies a partial patch to an existing contact and returns
	// the updated record
	Update(ctx context.Context, c *contact.Contact, patch contact.Update) (*contact.Contact, error)

	// Delete removes a contact permanently
	Delete(ctx context.Context, c *contact.Contact) error
}

// UserRepository persists registered users
type UserRepository interface {
	Save(ctx context.Context, u *user.User) error

	// FindByID returns (nil, nil) when the id is unknown
	FindByID(ctx context.Context, id user.ID) (*user.User, error)

	// FindByEmail returns (nil, nil) when no user has the email
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
