package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"contactkeeper/application/ports"
	"contactkeeper/domain/contact"
	"contactkeeper/domain/user"
	apperrors "contactkeeper/pkg/errors"
)

// ContactService implements the contact operations behind the REST API.
// Every operation is scoped to the calling user: lookups that land on
// someone else's contact fail with an ownership error and leave the record
// untouched.
type ContactService struct {
	contacts ports.ContactRepository
	logger   *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(contacts ports.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		logger:   logger,
	}
}

// CreateInput carries the client-supplied fields of a new contact. The
// owner always comes from the authenticated identity, never from input.
type CreateInput struct {
	Name  string
	Email string
	Phone string
	Type  contact.Type
}

// List returns the caller's contacts, newest first
func (s *ContactService) List(ctx context.Context, caller user.ID) ([]*contact.Contact, error) {
	found, err := s.contacts.FindByUser(ctx, caller)
	if err != nil {
		s.logger.Error("failed to list contacts",
			zap.String("userID", caller.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("list contacts", err)
	}
	return found, nil
}

// Create persists a new contact owned by the caller and returns it
func (s *ContactService) Create(ctx context.Context, caller user.ID, in CreateInput) (*contact.Contact, error) {
	c, err := contact.New(caller, in.Name, in.Email, in.Phone, in.Type)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "name",
			Message: "Please enter a name",
		})
	}

	if err := s.contacts.Save(ctx, c); err != nil {
		s.logger.Error("failed to save contact",
			zap.String("userID", caller.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("save contact", err)
	}

	return c, nil
}

// Update applies a partial patch to the caller's contact and returns the
// updated record. Fields absent from the patch keep their prior values.
func (s *ContactService) Update(ctx context.Context, caller user.ID, id contact.ID, patch contact.Update) (*contact.Contact, error) {
	c, err := s.lookupOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.contacts.Update(ctx, c, patch)
	if err != nil {
		if errors.Is(err, contact.ErrEmptyName) {
			return nil, apperrors.NewValidationError(apperrors.FieldError{
				Field:   "name",
				Message: "Please enter a name",
			})
		}
		s.logger.Error("failed to update contact",
			zap.String("contactID", id.String()),
			zap.String("userID", caller.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("update contact", err)
	}

	return updated, nil
}

// Delete removes the caller's contact permanently
func (s *ContactService) Delete(ctx context.Context, caller user.ID, id contact.ID) error {
	c, err := s.lookupOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, c); err != nil {
		s.logger.Error("failed to delete contact",
			zap.String("contactID", id.String()),
			zap.String("userID", caller.String()),
			zap.Error(err),
		)
		return apperrors.NewDatabaseError("delete contact", err)
	}

	return nil
}

// lookupOwned fetches a contact and enforces ownership. Not found and
// not-owner are distinct failures; both leave the record untouched.
func (s *ContactService) lookupOwned(ctx context.Context, caller user.ID, id contact.ID) (*contact.Contact, error) {
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to look up contact",
			zap.String("contactID", id.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("find contact", err)
	}
	if c == nil {
		return nil, apperrors.NewNotFoundError("Contact")
	}
	if !c.OwnedBy(caller) {
		return nil, apperrors.NewOwnershipError("contact")
	}
	return c, nil
}
