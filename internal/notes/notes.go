// Package notes is the per-user free-text notes feature of the
// dashboard. Notes are created and deleted, never edited.
package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lumen-studio/lumen-backend/internal/collections"
)

// Collection is the sub-collection name under each user document.
const Collection = "notes"

var ErrEmptyContent = errors.New("note content must not be empty")

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	store collections.Store
}

func NewService(store collections.Store) *Service {
	return &Service{store: store}
}

// Add validates the content and issues the create. The guard runs
// before any network call; whitespace-only content never reaches the
// store.
func (s *Service) Add(ctx context.Context, ownerID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	_, err := s.store.Add(ctx, ownerID, Collection, map[string]interface{}{
		"content": content,
	})
	return err
}

// Delete removes a note. An unknown id is a successful no-op.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.Delete(ctx, ownerID, Collection, id)
}

// Subscribe opens a live snapshot stream of the owner's notes,
// newest first.
func (s *Service) Subscribe(ctx context.Context, ownerID string) (*collections.Subscription, error) {
	return collections.Subscribe(ctx, s.store, ownerID, Collection)
}

// FromDocs maps raw snapshot docs onto notes, keeping order.
func FromDocs(docs []collections.Doc) []Note {
	out := make([]Note, 0, len(docs))
	for _, d := range docs {
		out = append(out, Note{
			ID:        d.ID,
			Content:   d.Str("content"),
			CreatedAt: d.CreatedAt,
		})
	}
	return out
}
