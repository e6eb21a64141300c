package client

import (
	"sync"
)

// FilterInput models the search box above the contact list. Typing into
// it narrows the store's view; emptying it clears the narrowing. It also
// watches the store so that when the filter is cleared by anyone else
// (logout, a fresh fetch), the visible text resets to empty and the box
// never shows a filter that is not active.
type FilterInput struct {
	store *Store

	mu   sync.Mutex
	text string

	unsubscribe func()
}

// NewFilterInput creates a filter input bound to the store
func NewFilterInput(store *Store) *FilterInput {
	f := &FilterInput{store: store}
	f.unsubscribe = store.Subscribe(f.onStateChange)
	return f
}

// SetText is called on every change to the input's text
func (f *FilterInput) SetText(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()

	if text != "" {
		f.store.Dispatch(FilterContacts{Text: text})
	} else {
		f.store.Dispatch(ClearFilter{})
	}
}

// Text returns the currently displayed text
func (f *FilterInput) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

// Close detaches the input from the store
func (f *FilterInput) Close() {
	f.unsubscribe()
}

func (f *FilterInput) onStateChange(state ContactsView) {
	if state.FilterActive() {
		return
	}
	f.mu.Lock()
	f.text = ""
	f.mu.Unlock()
}
