package profiles

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lumen-studio/lumen-backend/internal/collections"
)

// Repo stores profiles at users/{uid} in Firestore.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection("users").Doc(uid)
}

func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, collections.Classify(err)
	}

	var p Profile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Create writes the profile document. Two racing first sign-ins can
// both reach this; the second write wins at the document level, which
// is the store's documented behavior, so no transactional guard is
// applied here.
func (r *Repo) Create(ctx context.Context, uid string, p *Profile) error {
	_, err := r.doc(uid).Set(ctx, p)
	return collections.Classify(err)
}

func (r *Repo) SetPhotoURL(ctx context.Context, uid, photoURL string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "photoURL", Value: photoURL},
	})
	return collections.Classify(err)
}
