package client

import (
	"strings"

	"contactkeeper/domain/contact"
)

// ContactsView is one session's in-memory mirror of the user's contact
// list. Contacts is nil until the first fetch; Filtered is nil whenever
// no filter is active and otherwise always a subset of Contacts computed
// from the latest filter text.
type ContactsView struct {
	Contacts []*contact.Contact
	Current  *contact.Contact
	Filtered []*contact.Contact
	Err      string
	Loading  bool

	// filterText backs Filtered so list mutations can recompute it
	filterText string
}

// NewContactsView returns the state before the first contact fetch
func NewContactsView() ContactsView {
	return ContactsView{Loading: true}
}

// FilterActive reports whether a filter is currently narrowing the view
func (v ContactsView) FilterActive() bool {
	return v.Filtered != nil
}

// Reduce is the state-transition function of the contacts store: a pure
// total function from (state, action) to the next state. Inputs are never
// mutated; unrecognized actions return the state unchanged.
func Reduce(state ContactsView, action Action) ContactsView {
	switch a := action.(type) {
	case GetContacts:
		state.Contacts = copyContacts(a.Contacts)
		state.Loading = false
		return reapplyFilter(state)

	case AddContact:
		next := make([]*contact.Contact, 0, len(state.Contacts)+1)
		next = append(next, a.Contact)
		next = append(next, state.Contacts...)
		state.Contacts = next
		state.Loading = false
		return reapplyFilter(state)

	case DeleteContact:
		next := make([]*contact.Contact, 0, len(state.Contacts))
		for _, c := range state.Contacts {
			if c.ID != a.ID {
				next = append(next, c)
			}
		}
		state.Contacts = next
		state.Loading = false
		return reapplyFilter(state)

	case UpdateContact:
		next := make([]*contact.Contact, len(state.Contacts))
		for i, c := range state.Contacts {
			if c.ID == a.Contact.ID {
				next[i] = a.Contact
			} else {
				next[i] = c
			}
		}
		state.Contacts = next
		return reapplyFilter(state)

	case SetCurrent:
		state.Current = a.Contact
		return state

	case ClearCurrent:
		state.Current = nil
		return state

	case FilterContacts:
		state.filterText = a.Text
		state.Filtered = filterContacts(state.Contacts, a.Text)
		return state

	case ClearFilter:
		state.filterText = ""
		state.Filtered = nil
		return state

	case ContactError:
		state.Err = a.Message
		return state

	case ClearContacts:
		return ContactsView{}

	default:
		return state
	}
}

// reapplyFilter recomputes Filtered from the latest contacts whenever a
// filter is active, keeping the subset invariant after list mutations
func reapplyFilter(state ContactsView) ContactsView {
	if state.Filtered == nil {
		return state
	}
	state.Filtered = filterContacts(state.Contacts, state.filterText)
	return state
}

// filterContacts returns the contacts whose name or email contains text,
// case-insensitively. The result is always non-nil so an active filter
// with no matches stays distinguishable from no filter.
func filterContacts(contacts []*contact.Contact, text string) []*contact.Contact {
	needle := strings.ToLower(text)
	matched := []*contact.Contact{}
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			matched = append(matched, c)
		}
	}
	return matched
}

func copyContacts(contacts []*contact.Contact) []*contact.Contact {
	if contacts == nil {
		return nil
	}
	out := make([]*contact.Contact, len(contacts))
	copy(out, contacts)
	return out
}
