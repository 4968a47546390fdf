package collections

import (
	"context"
	"sync"
)

// Subscription is a standing watch on one owner's collection,
// exposed as a cancellable channel of full snapshots. Each delivered
// value fully replaces the previous one, so an unread stale snapshot
// may be coalesced away; the latest state is always delivered.
type Subscription struct {
	updates chan []Doc
	errs    chan error

	cancel context.CancelFunc
	once   sync.Once
}

// Subscribe opens a watch on users/{ownerID}/{collection} and starts
// delivering snapshots. The first snapshot arrives promptly even when
// the collection is empty. On a permission or transport failure the
// watch stops, the classified error is delivered on Err and nothing
// further arrives on Updates; there is no automatic retry.
func Subscribe(ctx context.Context, store Store, ownerID, collection string) (*Subscription, error) {
	wctx, cancel := context.WithCancel(ctx)
	w, err := store.Watch(wctx, ownerID, collection)
	if err != nil {
		cancel()
		return nil, Classify(err)
	}

	sub := &Subscription{
		updates: make(chan []Doc, 1),
		errs:    make(chan error, 1),
		cancel:  cancel,
	}
	go sub.run(wctx, w)
	return sub, nil
}

// Updates delivers full newest-first snapshots. The channel closes
// after Stop or after a terminal error.
func (s *Subscription) Updates() <-chan []Doc {
	return s.updates
}

// Err delivers at most one terminal error for the watch.
func (s *Subscription) Err() <-chan error {
	return s.errs
}

// Stop cancels the watch and releases the server-push channel.
// Safe to call any number of times.
func (s *Subscription) Stop() {
	s.once.Do(s.cancel)
}

func (s *Subscription) run(ctx context.Context, w Watch) {
	defer close(s.updates)
	defer s.Stop()

	// Release the watch as soon as the subscription is cancelled so
	// a blocked Next call returns.
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
		case <-finished:
		}
		w.Stop()
	}()

	for {
		docs, err := w.Next()
		if err != nil {
			if ctx.Err() != nil {
				// Unsubscribed; not an error from the list's
				// perspective.
				return
			}
			s.errs <- Classify(err)
			return
		}

		select {
		case s.updates <- docs:
		case <-ctx.Done():
			return
		default:
			// Drop the unread stale snapshot and replace it.
			select {
			case <-s.updates:
			default:
			}
			select {
			case s.updates <- docs:
			case <-ctx.Done():
				return
			}
		}
	}
}
