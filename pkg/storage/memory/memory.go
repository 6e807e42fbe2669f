// Package memory implements storage.Store with a mutex-guarded map.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/schedule"
	"github.com/matzehuels/schedgrid/pkg/storage"
)

// Store keeps events in memory. Events are deep-copied on the way in and
// out, so callers may modify what they get back.
type Store struct {
	mu     sync.RWMutex
	events map[string]*schedule.Event
}

// New returns an empty store.
func New() *Store {
	return &Store{events: make(map[string]*schedule.Event)}
}

// GetEvent implements storage.Store.
func (s *Store) GetEvent(ctx context.Context, id string) (*schedule.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	if !ok {
		return nil, storage.NotFound(id)
	}
	return ev.Clone(), nil
}

// PutEvent implements storage.Store.
func (s *Store) PutEvent(ctx context.Context, ev *schedule.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ev == nil {
		return errors.New(errors.ErrCodeInvalidInput, "event is nil")
	}
	if err := errors.ValidateEventID(ev.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.ID] = ev.Clone()
	return nil
}

// DeleteEvent implements storage.Store.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return storage.NotFound(id)
	}
	delete(s.events, id)
	return nil
}

// ListEvents implements storage.Store.
func (s *Store) ListEvents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ storage.Store = (*Store)(nil)
