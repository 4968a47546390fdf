package collections

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store with the same snapshot contract
// as FirestoreStore. It backs the test suite and lets the API run
// against no external services.
type MemoryStore struct {
	mu       sync.Mutex
	docs     map[string][]Doc // insertion order, oldest first
	watchers map[string][]*memoryWatch
	failErr  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string][]Doc),
		watchers: make(map[string][]*memoryWatch),
	}
}

// Fail makes every subsequent operation return err and terminates
// open watches with it. Used to exercise denial and transport paths.
func (s *MemoryStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
	for _, ws := range s.watchers {
		for _, w := range ws {
			w.fail(err)
		}
	}
}

func key(ownerID, collection string) string {
	return ownerID + "/" + collection
}

func (s *MemoryStore) Watch(ctx context.Context, ownerID, collection string) (Watch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}

	k := key(ownerID, collection)
	w := &memoryWatch{
		store: s,
		key:   k,
		ch:    make(chan []Doc, 16),
		errs:  make(chan error, 1),
	}
	s.watchers[k] = append(s.watchers[k], w)

	// Initial snapshot is delivered immediately, empty included.
	w.ch <- snapshotLocked(s.docs[k])
	return w, nil
}

func (s *MemoryStore) Add(ctx context.Context, ownerID, collection string, fields map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return "", s.failErr
	}

	data := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	now := time.Now().UTC()
	data[createdAtField] = now

	doc := Doc{ID: uuid.NewString(), Fields: data, CreatedAt: now}
	k := key(ownerID, collection)
	s.docs[k] = append(s.docs[k], doc)
	s.broadcastLocked(k)
	return doc.ID, nil
}

func (s *MemoryStore) Delete(ctx context.Context, ownerID, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}

	k := key(ownerID, collection)
	for i, d := range s.docs[k] {
		if d.ID == id {
			s.docs[k] = append(s.docs[k][:i], s.docs[k][i+1:]...)
			s.broadcastLocked(k)
			return nil
		}
	}
	// Unknown id: success, as the real store would report.
	return nil
}

func (s *MemoryStore) broadcastLocked(k string) {
	snap := snapshotLocked(s.docs[k])
	for _, w := range s.watchers[k] {
		select {
		case w.ch <- snap:
		default:
			// Watcher is not draining; it will catch up on the next
			// broadcast since every snapshot is complete.
		}
	}
}

// snapshotLocked returns a newest-first copy of the stored docs.
func snapshotLocked(docs []Doc) []Doc {
	out := make([]Doc, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		out = append(out, docs[i])
	}
	return out
}

func (s *MemoryStore) remove(k string, w *memoryWatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws := s.watchers[k]
	for i, cur := range ws {
		if cur == w {
			s.watchers[k] = append(ws[:i], ws[i+1:]...)
			return
		}
	}
}

type memoryWatch struct {
	store *MemoryStore
	key   string

	ch   chan []Doc
	errs chan error
	once sync.Once
}

func (w *memoryWatch) Next() ([]Doc, error) {
	select {
	case docs, ok := <-w.ch:
		if !ok {
			return nil, context.Canceled
		}
		return docs, nil
	case err := <-w.errs:
		return nil, err
	}
}

func (w *memoryWatch) Stop() {
	w.once.Do(func() {
		w.store.remove(w.key, w)
		close(w.ch)
	})
}

func (w *memoryWatch) fail(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
