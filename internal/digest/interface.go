package digest

import (
	"context"

	"repodigest/internal/model"
	"repodigest/internal/scheduler"
)

// UseCase defines the business logic interface for the digest domain.
// Run and AnalyzeImpact are invoked by the task worker; the rest serve the
// read API.
type UseCase interface {
	// Run drives one event through the digest pipeline: placeholder, content
	// generation, perspective fan-out, follow-up scheduling. Idempotent per
	// event; re-running a terminal event is a no-op.
	Run(ctx context.Context, sc model.Scope, eventID string) error

	// Get returns one digest by id.
	Get(ctx context.Context, sc model.Scope, id string) (model.Digest, error)

	// List returns digests for a repository, newest activity first.
	List(ctx context.Context, sc model.Scope, input ListInput) ([]model.Digest, error)

	// RunHandler adapts Run for the task worker.
	RunHandler() scheduler.Handler

	// ImpactHandler adapts the impact analysis step for the task worker.
	ImpactHandler() scheduler.Handler
}
