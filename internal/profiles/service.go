package profiles

import (
	"context"
	"fmt"

	"github.com/lumen-studio/lumen-backend/internal/auth"
)

type Service struct {
	store  ProfileStore
	images ImageUploader
}

func NewService(store ProfileStore, images ImageUploader) *Service {
	return &Service{store: store, images: images}
}

// EnsureProfile lazily creates the caller's profile on first
// authentication. An existing profile is never overwritten. Two
// concurrent calls for a brand-new user can both observe "absent"
// and both write; the document-level last write wins, which is
// accepted behavior rather than something to guard against here.
func (s *Service) EnsureProfile(ctx context.Context, id auth.Identity) error {
	existing, err := s.store.Get(ctx, id.UID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	displayName := id.DisplayName
	if displayName == "" {
		displayName = id.Email
	}

	return s.store.Create(ctx, id.UID, &Profile{
		Email:       id.Email,
		DisplayName: displayName,
		PhotoURL:    id.PhotoURL,
	})
}

// GetProfile is a point read; nil means not found.
func (s *Service) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	return s.store.Get(ctx, uid)
}

// UploadProfileImage stores the bytes, then patches the profile's
// photo URL. An upload failure aborts before the patch; a patch
// failure leaves the uploaded blob unlinked, which is accepted and
// not cleaned up.
func (s *Service) UploadProfileImage(ctx context.Context, uid, fileName string, data []byte) (string, error) {
	photoURL, err := s.images.Upload(ctx, uid, fileName, data)
	if err != nil {
		return "", fmt.Errorf("upload profile image: %w", err)
	}

	if err := s.store.SetPhotoURL(ctx, uid, photoURL); err != nil {
		return "", fmt.Errorf("link profile image: %w", err)
	}
	return photoURL, nil
}
