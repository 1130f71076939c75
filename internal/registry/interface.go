package registry

import (
	"context"

	"repodigest/internal/model"
)

// UseCase defines the business logic interface for the repository registry.
type UseCase interface {
	// Register tracks a repository so its activity gets digested. Registering
	// an already tracked full name returns the existing record.
	Register(ctx context.Context, sc model.Scope, input RegisterInput) (model.Repository, error)

	// Get returns one tracked repository by id.
	Get(ctx context.Context, sc model.Scope, id string) (model.Repository, error)

	// GetByFullName resolves a tracked repository by its "owner/repo" name.
	GetByFullName(ctx context.Context, sc model.Scope, fullName string) (model.Repository, error)

	// List returns tracked repositories for an owner. Empty owner lists all.
	List(ctx context.Context, sc model.Scope, ownerID string) ([]model.Repository, error)

	// SetCredential stores or replaces the owner's generation credential.
	SetCredential(ctx context.Context, sc model.Scope, input SetCredentialInput) error

	// ResolveCredential returns the generation key for an owner, falling back
	// to the service key. Empty result means generation must be skipped.
	ResolveCredential(ctx context.Context, sc model.Scope, ownerID string) (string, error)

	// SetCodeIndexStatus updates a repository's code index readiness.
	SetCodeIndexStatus(ctx context.Context, sc model.Scope, repositoryID string, status model.CodeIndexStatus) error
}
