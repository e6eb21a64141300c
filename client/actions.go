package client

import (
	"contactkeeper/domain/contact"
)

// Action is the closed set of state transitions the contacts store
// understands. Each action carries its own payload type; the marker
// method keeps the union sealed to this package's types.
type Action interface {
	isAction()
}

// GetContacts replaces the contact list with a freshly fetched one and
// clears the loading flag
type GetContacts struct {
	Contacts []*contact.Contact
}

// AddContact prepends a newly created contact to the list
type AddContact struct {
	Contact *contact.Contact
}

// DeleteContact removes the contact with the given id from the list
type DeleteContact struct {
	ID contact.ID
}

// UpdateContact replaces the matching contact in place, preserving order
type UpdateContact struct {
	Contact *contact.Contact
}

// SetCurrent selects a contact for editing
type SetCurrent struct {
	Contact *contact.Contact
}

// ClearCurrent drops the editing selection
type ClearCurrent struct{}

// FilterContacts narrows the view to contacts whose name or email
// contains the text, case-insensitively
type FilterContacts struct {
	Text string
}

// ClearFilter drops the narrowed view
type ClearFilter struct{}

// ContactError records an API failure for the UI to display
type ContactError struct {
	Message string
}

// ClearContacts resets the whole view; dispatched on logout
type ClearContacts struct{}

func (GetContacts) isAction()    {}
func (AddContact) isAction()     {}
func (DeleteContact) isAction()  {}
func (UpdateContact) isAction()  {}
func (SetCurrent) isAction()     {}
func (ClearCurrent) isAction()   {}
func (FilterContacts) isAction() {}
func (ClearFilter) isAction()    {}
func (ContactError) isAction()   {}
func (ClearContacts) isAction()  {}
