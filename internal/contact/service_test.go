package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saved []*Message
	err   error
}

func (s *fakeStore) Save(ctx context.Context, m *Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, m)
	return "msg-1", nil
}

type fakeMailer struct {
	sent []Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, e Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

func validMessage() Message {
	return Message{Name: "Jo", Email: "jo@example.com", Message: "Hello, I love the site!"}
}

func TestSubmitSuccess(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	svc := NewService(store, mailer, "noreply@lumen.dev", "owner@lumen.dev")

	res, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Message sent successfully!", res.Message)

	require.Len(t, store.saved, 1)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "noreply@lumen.dev", mailer.sent[0].From)
	assert.Equal(t, "owner@lumen.dev", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "Jo")
	assert.Contains(t, mailer.sent[0].HTML, "jo@example.com")
}

func TestSubmitInvalidMessageTouchesNothing(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	svc := NewService(store, mailer, "a@b.c", "d@e.f")

	m := validMessage()
	m.Email = "broken"
	_, err := svc.Submit(context.Background(), m)
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, store.saved)
	assert.Empty(t, mailer.sent)
}

func TestSubmitSaveFailureSkipsEmail(t *testing.T) {
	store := &fakeStore{err: errors.New("firestore down")}
	mailer := &fakeMailer{}
	svc := NewService(store, mailer, "a@b.c", "d@e.f")

	res, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, mailer.sent)
}

func TestSubmitEmailFailureStillStores(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{err: errors.New("resend down")}
	svc := NewService(store, mailer, "a@b.c", "d@e.f")

	res, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Len(t, store.saved, 1)
}

func TestNotificationHTMLEscapes(t *testing.T) {
	m := Message{Name: "<b>Jo</b>", Email: "jo@example.com", Message: "a < b"}
	html := notificationHTML(m)
	assert.Contains(t, html, "&lt;b&gt;Jo&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Jo</b>")
}
