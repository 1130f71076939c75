package summary

import (
	"context"

	"repodigest/internal/model"
	"repodigest/internal/scheduler"
)

// UseCase defines the business logic interface for period summaries.
type UseCase interface {
	// Get returns the summary for one period window, if it exists.
	Get(ctx context.Context, sc model.Scope, input GetInput) (model.Summary, error)

	// List returns summaries for a repository, newest period first.
	List(ctx context.Context, sc model.Scope, input ListInput) ([]model.Summary, error)

	// RollupHandler adapts the rollup step for the task worker.
	RollupHandler() scheduler.Handler
}
