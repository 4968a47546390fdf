package collections

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const (
	usersCollection = "users"
	createdAtField  = "createdAt"
)

// FirestoreStore implements Store on Cloud Firestore. Documents live
// under users/{ownerID}/{collection}; creation timestamps are
// server-assigned and ordering happens in the query, so every
// snapshot arrives already newest first.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) owned(ownerID, collection string) *firestore.CollectionRef {
	return s.client.Collection(usersCollection).Doc(ownerID).Collection(collection)
}

func (s *FirestoreStore) Watch(ctx context.Context, ownerID, collection string) (Watch, error) {
	it := s.owned(ownerID, collection).
		OrderBy(createdAtField, firestore.Desc).
		Snapshots(ctx)
	return &firestoreWatch{it: it}, nil
}

func (s *FirestoreStore) Add(ctx context.Context, ownerID, collection string, fields map[string]interface{}) (string, error) {
	data := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	data[createdAtField] = firestore.ServerTimestamp

	ref, _, err := s.owned(ownerID, collection).Add(ctx, data)
	if err != nil {
		return "", Classify(err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, ownerID, collection, id string) error {
	// Firestore treats deleting a missing document as success.
	_, err := s.owned(ownerID, collection).Doc(id).Delete(ctx)
	return Classify(err)
}

type firestoreWatch struct {
	it *firestore.QuerySnapshotIterator
}

func (w *firestoreWatch) Next() ([]Doc, error) {
	snap, err := w.it.Next()
	if err != nil {
		return nil, Classify(err)
	}

	docs := make([]Doc, 0, snap.Size)
	iter := snap.Documents
	for {
		d, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, Classify(err)
		}

		fields := d.Data()
		createdAt, _ := fields[createdAtField].(time.Time)
		docs = append(docs, Doc{
			ID:        d.Ref.ID,
			Fields:    fields,
			CreatedAt: createdAt,
		})
	}
	return docs, nil
}

func (w *firestoreWatch) Stop() {
	w.it.Stop()
}
