// Package contact records inbound contact-form messages and relays
// them to the operator by email. The store is the source of truth;
// the email is best-effort.
package contact

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

var (
	ErrNameTooShort    = errors.New("name must be at least 2 characters")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrMessageTooShort = errors.New("message must be at least 10 characters")
)

// Message is the contacts/{id} document. Write-once: nothing in this
// application reads it back.
type Message struct {
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Message   string    `firestore:"message" json:"message"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

// Validate runs the client-side rules before any persistence or
// email call.
func (m *Message) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(m.Name)) < minNameLen {
		return ErrNameTooShort
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(m.Email)); err != nil {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(strings.TrimSpace(m.Message)) < minMessageLen {
		return ErrMessageTooShort
	}
	return nil
}

// MessageStore persists contact messages.
type MessageStore interface {
	Save(ctx context.Context, m *Message) (string, error)
}

// Mailer sends one outbound email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// Email is one outbound message for the Mailer.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
}
