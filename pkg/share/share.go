// Package share holds the state of the share overlay. Sending only marks a
// contact as sent; nothing is delivered.
package share

import (
	"errors"
	"sync"
)

var (
	ErrUnknownContact = errors.New("share: unknown contact")
	ErrAlreadySent    = errors.New("share: already sent to contact")
)

type Contact struct {
	Name   string
	Avatar string
	Sent   bool
}

// DefaultContacts is the static list offered for every post.
var DefaultContacts = []Contact{
	{Name: "Aarav Sharma", Avatar: "/placeholder.png"},
	{Name: "Diya Patel", Avatar: "/placeholder.png"},
	{Name: "Kabir Singh", Avatar: "/placeholder.png"},
	{Name: "Meera Iyer", Avatar: "/placeholder.png"},
	{Name: "Rohan Gupta", Avatar: "/placeholder.png"},
}

type Session struct {
	PostID string

	mu       sync.Mutex
	contacts []Contact
}

// NewSession starts a share session; nil contacts means DefaultContacts.
func NewSession(postID string, contacts []Contact) *Session {
	if contacts == nil {
		contacts = DefaultContacts
	}
	list := make([]Contact, len(contacts))
	copy(list, contacts)
	for i := range list {
		list[i].Sent = false
	}
	return &Session{PostID: postID, contacts: list}
}

// Send marks name as sent. A contact can be sent to once.
func (s *Session) Send(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contacts {
		if s.contacts[i].Name != name {
			continue
		}
		if s.contacts[i].Sent {
			return ErrAlreadySent
		}
		s.contacts[i].Sent = true
		return nil
	}
	return ErrUnknownContact
}

func (s *Session) Contacts() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Contact(nil), s.contacts...)
}
