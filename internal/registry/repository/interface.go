package repository

import (
	"context"
	"errors"

	"repodigest/internal/model"
)

// ErrRepositoryNotFound is returned when no repository matches the lookup.
var ErrRepositoryNotFound = errors.New("repository not found")

// ErrCredentialNotFound is returned when the owner has no stored credential.
var ErrCredentialNotFound = errors.New("credential not found")

// RegistryRepository is the persistence interface for tracked repositories.
type RegistryRepository interface {
	Create(ctx context.Context, repo *model.Repository) error
	GetByID(ctx context.Context, id string) (model.Repository, error)
	GetByFullName(ctx context.Context, fullName string) (model.Repository, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Repository, error)
	UpdateCodeIndexStatus(ctx context.Context, id string, status model.CodeIndexStatus) error
}

// CredentialRepository is the persistence interface for owner credentials.
type CredentialRepository interface {
	// Set inserts or replaces the owner's credential.
	Set(ctx context.Context, cred *model.OwnerCredential) error
	Get(ctx context.Context, ownerID string) (model.OwnerCredential, error)
}
