package contact

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/lumen-studio/lumen-backend/internal/collections"
)

// contactsCollection is flat, not per-user: the form is public.
const contactsCollection = "contacts"

// Repo stores messages in Firestore.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Save(ctx context.Context, m *Message) (string, error) {
	ref, _, err := r.client.Collection(contactsCollection).Add(ctx, m)
	if err != nil {
		return "", collections.Classify(err)
	}
	return ref.ID, nil
}
