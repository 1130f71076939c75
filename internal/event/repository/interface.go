package repository

import (
	"context"
	"errors"
	"time"

	"repodigest/internal/model"
)

// ErrDuplicateDelivery is returned by Create when the delivery id exists.
var ErrDuplicateDelivery = errors.New("delivery id already exists")

// ErrEventNotFound is returned when no event matches the lookup.
var ErrEventNotFound = errors.New("event not found")

// EventRepository is the persistence interface for events.
type EventRepository interface {
	// Create inserts the event. It must be atomic with respect to concurrent
	// inserts of the same delivery id: exactly one caller wins, the rest get
	// ErrDuplicateDelivery.
	Create(ctx context.Context, ev *model.Event) error

	// GetByID returns one event by primary key.
	GetByID(ctx context.Context, id string) (model.Event, error)

	// GetByDeliveryID returns the event recorded for a delivery id.
	GetByDeliveryID(ctx context.Context, deliveryID string) (model.Event, error)

	// UpdateStatus transitions the event state, recording an optional error
	// message. Completed events also get ProcessedAt stamped.
	UpdateStatus(ctx context.Context, id string, status model.EventStatus, errMsg string) error

	// SetFileDiffs persists lazily fetched diffs onto the event so later
	// pipeline steps reuse them without re-fetching.
	SetFileDiffs(ctx context.Context, id string, diffs []model.FileDiff) error

	// ListByRepository returns events for a repository ordered by OccurredAt
	// descending. Zero From/To mean unbounded.
	ListByRepository(ctx context.Context, repositoryID string, from, to time.Time, limit int) ([]model.Event, error)

	// Delete removes an event. Kept for operators; the pipeline itself
	// retains events after completion.
	Delete(ctx context.Context, id string) error
}
