// Package notify collects the transient messages shown to the author as
// toasts.
package notify

import (
	"sync"

	"github.com/air-examples/composer/model"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Success(text model.Text, args ...interface{})
	Error(text model.Text, args ...interface{})
	Dismiss()
}

// Notification is one pending toast.
type Notification struct {
	Kind Kind
	Text model.Text
	Args []interface{}
}

// Message is a localized notification as sent to the page.
type Message struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Toaster queues notifications for one request. It is safe for concurrent use.
type Toaster struct {
	mu      sync.Mutex
	pending []Notification
}

func (t *Toaster) Success(text model.Text, args ...interface{}) {
	t.push(Notification{Kind: KindSuccess, Text: text, Args: args})
}

func (t *Toaster) Error(text model.Text, args ...interface{}) {
	t.push(Notification{Kind: KindError, Text: text, Args: args})
}

// Dismiss drops every pending notification.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	t.pending = nil
	t.mu.Unlock()
}

func (t *Toaster) push(n Notification) {
	t.mu.Lock()
	t.pending = append(t.pending, n)
	t.mu.Unlock()
}

// Pending returns a copy of the queued notifications.
func (t *Toaster) Pending() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Notification(nil), t.pending...)
}

// Drain localizes and removes the queued notifications.
func (t *Toaster) Drain(locale string) []Message {
	t.mu.Lock()
	ns := t.pending
	t.pending = nil
	t.mu.Unlock()

	ms := make([]Message, 0, len(ns))
	for _, n := range ns {
		ms = append(ms, Message{
			Kind:    n.Kind,
			Message: n.Text.Format(locale, n.Args...),
		})
	}

	return ms
}

type discard struct{}

func (discard) Success(model.Text, ...interface{}) {}
func (discard) Error(model.Text, ...interface{})   {}
func (discard) Dismiss()                           {}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}
