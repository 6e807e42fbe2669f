// Package storage defines where schedule documents live between requests.
//
// A [Store] keeps one [schedule.Event] per id. The grid never talks to a
// store directly: the pipeline loads an event, filters it, and hands plain
// slices to the grid.
//
// Implementations:
//   - [memory]: process-local map, used by tests and the CLI
//   - [mongo]: one MongoDB document per event, used by the HTTP server
//
// [memory]: github.com/matzehuels/schedgrid/pkg/storage/memory
// [mongo]: github.com/matzehuels/schedgrid/pkg/storage/mongo
package storage

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/schedgrid/pkg/errors"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

// ErrNotFound is the cause of every "no such event" error returned by a Store.
var ErrNotFound = stderrors.New("event not found")

// Store persists schedule documents.
type Store interface {
	// GetEvent returns the event with the given id. Missing events yield an
	// error matching ErrNotFound.
	GetEvent(ctx context.Context, id string) (*schedule.Event, error)

	// PutEvent inserts or replaces an event.
	PutEvent(ctx context.Context, ev *schedule.Event) error

	// DeleteEvent removes an event. Missing events yield ErrNotFound.
	DeleteEvent(ctx context.Context, id string) error

	// ListEvents returns all event ids in ascending order.
	ListEvents(ctx context.Context) ([]string, error)

	// Close releases the backend.
	Close() error
}

// NotFound returns the error stores report for a missing event. It carries
// both ErrNotFound and the EVENT_NOT_FOUND code.
func NotFound(id string) error {
	return errors.Wrap(errors.ErrCodeEventNotFound, ErrNotFound, "event %q not found", id)
}

// IsNotFound reports whether err means the event does not exist.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}
