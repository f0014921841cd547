// Package wallet holds the process-wide connected wallet address.
//
// The browser wallet adapter reports connection events; State copies the
// connected public key into shared state that other components, such as the
// token holdings service, read or subscribe to.
package wallet

import (
	"sync"
)

// Connection is a wallet adapter connection event.
type Connection struct {
	Connected bool   `json:"connected"`
	PublicKey string `json:"public_key"`
}

// Listener is called with the new address after every change.
type Listener func(address string)

// State is the shared wallet address. One writer, many readers.
type State struct {
	mu        sync.RWMutex
	address   string
	listeners []Listener

	// onSync observes every write; used for metrics.
	onSync func()
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// OnSync registers a hook invoked after each address write.
func (s *State) OnSync(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSync = fn
}

// Sync applies a connection event. When the wallet is connected with a
// non-empty public key that differs from the current address, the address is
// written and subscribers are notified once. Anything else is a no-op; a
// disconnect does not clear the address. Returns whether a write happened.
func (s *State) Sync(conn Connection) bool {
	if !conn.Connected || conn.PublicKey == "" {
		return false
	}
	return s.SetAddress(conn.PublicKey)
}

// SetAddress writes address when it differs from the current value and
// notifies subscribers synchronously. Returns whether a write happened.
func (s *State) SetAddress(address string) bool {
	s.mu.Lock()
	if s.address == address {
		s.mu.Unlock()
		return false
	}
	s.address = address
	listeners := append([]Listener(nil), s.listeners...)
	hook := s.onSync
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	for _, fn := range listeners {
		fn(address)
	}
	return true
}

// Address returns the current address, or "" before the first connection.
func (s *State) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

// Subscribe registers fn to be called after each address change.
func (s *State) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
