package contact

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"contactkeeper/domain/user"
)

// ID identifies a contact record
type ID string

func (id ID) String() string {
	return string(id)
}

// Type categorizes a contact
type Type string

const (
	TypePersonal     Type = "personal"
	TypeProfessional Type = "professional"
)

// Valid reports whether t is a recognized contact type
func (t Type) Valid() bool {
	return t == TypePersonal || t == TypeProfessional
}

var ErrEmptyName = errors.New("contact name is required")

// Contact is a persisted record representing a person, owned by exactly
// one user. The owner is assigned at creation from the authenticated
// identity and never changes.
type Contact struct {
	ID        ID        `json:"id"`
	UserID    user.ID   `json:"user"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"date"`
}

// New creates a contact owned by the given user. Name must be non-empty;
// type defaults to personal.
func New(owner user.ID, name, email, phone string, ctype Type) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if ctype == "" {
		ctype = TypePersonal
	}
	if !ctype.Valid() {
		return nil, errors.New("unknown contact type: " + string(ctype))
	}

	return &Contact{
		ID:        ID(uuid.New().String()),
		UserID:    owner,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Type:      ctype,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Update describes a field-level partial patch. Nil fields are left
// unchanged; this is a merge, not a replace.
type Update struct {
	Name  *string
	Email *string
	Phone *string
	Type  *Type
}

// Empty reports whether the patch changes nothing
func (u Update) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Type == nil
}

// Apply merges the patch into the contact. A nil name pointer keeps the
// current name; an explicitly empty name is rejected.
func (c *Contact) Apply(patch Update) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrEmptyName
		}
		c.Name = name
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return errors.New("unknown contact type: " + string(*patch.Type))
		}
		c.Type = *patch.Type
	}
	return nil
}

// OwnedBy reports whether the contact belongs to the given user
func (c *Contact) OwnedBy(id user.ID) bool {
	return c.UserID == id
}
