// Package collections maintains live, per-user document collections
// mirrored from the backing store. Every change pushed by the store is
// re-delivered as one full ordered snapshot, never as an incremental
// diff, so consumers can replace their state wholesale.
package collections

import (
	"context"
	"time"
)

// Doc is one document in a user's sub-collection.
type Doc struct {
	ID        string
	Fields    map[string]interface{}
	CreatedAt time.Time
}

// Str returns the named field as a string, or "" when absent.
func (d Doc) Str(field string) string {
	if v, ok := d.Fields[field].(string); ok {
		return v
	}
	return ""
}

// Watch is a standing listener on one owner's sub-collection. Next
// blocks until the store pushes the next full snapshot, newest first.
type Watch interface {
	Next() ([]Doc, error)
	Stop()
}

// Store abstracts the per-user document collections. The backing
// store assigns ids and creation timestamps; all concurrent writers
// are arbitrated there, not here.
type Store interface {
	// Watch opens a listener on users/{ownerID}/{collection}, ordered
	// by creation time descending.
	Watch(ctx context.Context, ownerID, collection string) (Watch, error)

	// Add creates a document with a server-assigned creation
	// timestamp and returns its id.
	Add(ctx context.Context, ownerID, collection string, fields map[string]interface{}) (string, error)

	// Delete removes a document. Deleting an id that does not exist
	// is a no-op, matching the store's semantics.
	Delete(ctx context.Context, ownerID, collection, id string) error
}
