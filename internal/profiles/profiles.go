// Package profiles materializes one profile document per
// authenticated user and manages the profile image.
package profiles

import (
	"context"
	"time"
)

// Profile is the users/{uid} document. CreatedAt is server-assigned
// on first write and never changed afterwards.
type Profile struct {
	Email       string    `firestore:"email" json:"email"`
	DisplayName string    `firestore:"displayName,omitempty" json:"display_name,omitempty"`
	PhotoURL    string    `firestore:"photoURL,omitempty" json:"photo_url,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

// ProfileStore is the document side of the profile feature.
type ProfileStore interface {
	// Get returns nil, nil when no profile exists.
	Get(ctx context.Context, uid string) (*Profile, error)
	Create(ctx context.Context, uid string, p *Profile) error
	SetPhotoURL(ctx context.Context, uid, photoURL string) error
}

// ImageUploader stores profile image bytes and returns a durable
// download URL.
type ImageUploader interface {
	Upload(ctx context.Context, uid, fileName string, data []byte) (string, error)
}
