package contact

import (
	"context"
	"fmt"
	"html"
	"log"
)

// Result is what the form caller sees. Message deliberately omits
// provider detail; the specifics stay in the operator logs.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Service struct {
	store  MessageStore
	mailer Mailer
	from   string
	to     string
}

func NewService(store MessageStore, mailer Mailer, from, to string) *Service {
	return &Service{store: store, mailer: mailer, from: from, to: to}
}

// Submit persists the message, then attempts the notification email.
// Validation failures return an error before any call leaves the
// process. Operational failures come back as an unsuccessful Result:
// if the store succeeded but the email failed, the message stays
// stored and the overall result is still failure.
func (s *Service) Submit(ctx context.Context, m Message) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}

	id, err := s.store.Save(ctx, &m)
	if err != nil {
		log.Printf("[error] operation=contact_save error=%v", err)
		return Result{Success: false, Message: "An unexpected error occurred while processing your message."}, nil
	}
	log.Printf("[info] operation=contact_save id=%s", id)

	if err := s.mailer.Send(ctx, Email{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("New Contact Message from %s", m.Name),
		HTML:    notificationHTML(m),
	}); err != nil {
		log.Printf("[error] operation=contact_email id=%s error=%v", id, err)
		return Result{Success: false, Message: "There was an issue sending your message. Please try again later."}, nil
	}

	return Result{Success: true, Message: "Message sent successfully!"}, nil
}

func notificationHTML(m Message) string {
	return fmt.Sprintf(
		"<p>You have received a new message from your website's contact form.</p>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Message:</strong></p><p>%s</p>",
		html.EscapeString(m.Name),
		html.EscapeString(m.Email),
		html.EscapeString(m.Message),
	)
}
