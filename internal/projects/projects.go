// Package projects is the per-user project list: created manually or
// from an AI prompt, deleted explicitly, never mutated in place.
package projects

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lumen-studio/lumen-backend/internal/collections"
)

// Collection is the sub-collection name under each user document.
const Collection = "projects"

// MinNameLen is the minimum project name length in runes.
const MinNameLen = 3

var ErrNameTooShort = errors.New("project name must be at least 3 characters")

// Status is the project lifecycle state. The wire values match what
// the web client renders.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// ParseStatus maps a raw status string onto the enum. Anything
// unrecognized, the empty string included, becomes the default
// Not Started.
func ParseStatus(raw string) Status {
	switch Status(strings.TrimSpace(raw)) {
	case StatusInProgress:
		return StatusInProgress
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Service struct {
	store collections.Store
}

func NewService(store collections.Store) *Service {
	return &Service{store: store}
}

// Add validates the name client-side and issues the create. Short
// names never reach the store.
func (s *Service) Add(ctx context.Context, ownerID, name, description string, status Status) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLen {
		return ErrNameTooShort
	}

	fields := map[string]interface{}{
		"name":   name,
		"status": string(ParseStatus(string(status))),
	}
	if description = strings.TrimSpace(description); description != "" {
		fields["description"] = description
	}

	_, err := s.store.Add(ctx, ownerID, Collection, fields)
	return err
}

// Delete removes a project. An unknown id is a successful no-op.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.store.Delete(ctx, ownerID, Collection, id)
}

// Subscribe opens a live snapshot stream of the owner's projects,
// newest first.
func (s *Service) Subscribe(ctx context.Context, ownerID string) (*collections.Subscription, error) {
	return collections.Subscribe(ctx, s.store, ownerID, Collection)
}

// FromDocs maps raw snapshot docs onto projects, keeping order.
func FromDocs(docs []collections.Doc) []Project {
	out := make([]Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, Project{
			ID:          d.ID,
			Name:        d.Str("name"),
			Description: d.Str("description"),
			Status:      ParseStatus(d.Str("status")),
			CreatedAt:   d.CreatedAt,
		})
	}
	return out
}
