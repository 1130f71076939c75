package event

import (
	"context"

	"repodigest/internal/model"
)

// UseCase defines the business logic interface for the event domain.
type UseCase interface {
	// Ingest records an inbound activity event and schedules the digest
	// pipeline for it. Re-delivery of a known delivery id is a no-op that
	// returns the existing event id.
	Ingest(ctx context.Context, sc model.Scope, input IngestInput) (IngestOutput, error)

	// Get returns one event by id.
	Get(ctx context.Context, sc model.Scope, id string) (model.Event, error)

	// List returns events for a repository within a time range.
	List(ctx context.Context, sc model.Scope, input ListInput) ([]model.Event, error)
}
