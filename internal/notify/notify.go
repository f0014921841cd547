// Package notify carries user-facing notifications from background work to
// whichever surface is showing them.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type classifies a notification for display.
type Type string

// Notification types.
const (
	TypeError   Type = "error"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
)

// Notification is a single message shown to the user.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a notification with a fresh ID.
func New(message string, typ Type) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	}
}

// Error creates an error notification from err's message.
func Error(err error) Notification {
	return New(err.Error(), TypeError)
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) {
	f(n)
}

// Discard drops every notification.
//
//nolint:gochecknoglobals // stateless
var Discard Notifier = Func(func(Notification) {})

// Recorder keeps notifications in arrival order. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify appends n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Len returns how many notifications were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Multi fans a notification out to several notifiers in order.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(n Notification) {
		for _, target := range notifiers {
			if target != nil {
				target.Notify(n)
			}
		}
	})
}
