package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"repodigest/internal/model"
	"repodigest/internal/registry"
	"repodigest/internal/registry/repository"
)

func (uc *implUseCase) Register(ctx context.Context, sc model.Scope, input registry.RegisterInput) (model.Repository, error) {
	if input.FullName == "" {
		return model.Repository{}, registry.ErrMissingFullName
	}
	if input.OwnerID == "" {
		return model.Repository{}, registry.ErrMissingOwner
	}

	existing, err := uc.repo.GetByFullName(ctx, input.FullName)
	if err == nil {
		uc.l.Infof(ctx, "Register: %s already tracked as %s", input.FullName, existing.ID)
		return existing, nil
	}
	if !errors.Is(err, repository.ErrRepositoryNotFound) {
		return model.Repository{}, fmt.Errorf("failed to look up repository %s: %w", input.FullName, err)
	}

	branch := input.DefaultBranch
	if branch == "" {
		branch = "main"
	}
	repo := &model.Repository{
		ID:              uuid.NewString(),
		FullName:        input.FullName,
		OwnerID:         input.OwnerID,
		DefaultBranch:   branch,
		CodeIndexStatus: model.CodeIndexNone,
	}
	if err := uc.repo.Create(ctx, repo); err != nil {
		return model.Repository{}, fmt.Errorf("failed to create repository %s: %w", input.FullName, err)
	}

	uc.l.Infof(ctx, "Register: tracking %s as %s for owner %s", repo.FullName, repo.ID, repo.OwnerID)
	return *repo, nil
}

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, id string) (model.Repository, error) {
	repo, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrRepositoryNotFound) {
		return model.Repository{}, registry.ErrNotFound
	}
	return repo, err
}

func (uc *implUseCase) GetByFullName(ctx context.Context, sc model.Scope, fullName string) (model.Repository, error) {
	repo, err := uc.repo.GetByFullName(ctx, fullName)
	if errors.Is(err, repository.ErrRepositoryNotFound) {
		return model.Repository{}, registry.ErrNotFound
	}
	return repo, err
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, ownerID string) ([]model.Repository, error) {
	return uc.repo.ListByOwner(ctx, ownerID)
}

func (uc *implUseCase) SetCredential(ctx context.Context, sc model.Scope, input registry.SetCredentialInput) error {
	if input.OwnerID == "" {
		return registry.ErrMissingOwner
	}
	if input.APIKey == "" {
		return registry.ErrMissingAPIKey
	}
	cred := &model.OwnerCredential{
		OwnerID: input.OwnerID,
		APIKey:  input.APIKey,
	}
	if err := uc.creds.Set(ctx, cred); err != nil {
		return fmt.Errorf("failed to store credential for owner %s: %w", input.OwnerID, err)
	}
	uc.l.Infof(ctx, "SetCredential: credential stored for owner %s", input.OwnerID)
	return nil
}

// ResolveCredential prefers the owner's own key; the service key is the
// fallback. An empty return value is not an error, it means skip generation.
func (uc *implUseCase) ResolveCredential(ctx context.Context, sc model.Scope, ownerID string) (string, error) {
	cred, err := uc.creds.Get(ctx, ownerID)
	if err == nil && cred.APIKey != "" {
		return cred.APIKey, nil
	}
	if err != nil && !errors.Is(err, repository.ErrCredentialNotFound) {
		return "", fmt.Errorf("failed to load credential for owner %s: %w", ownerID, err)
	}
	return uc.serviceKey, nil
}

func (uc *implUseCase) SetCodeIndexStatus(ctx context.Context, sc model.Scope, repositoryID string, status model.CodeIndexStatus) error {
	err := uc.repo.UpdateCodeIndexStatus(ctx, repositoryID, status)
	if errors.Is(err, repository.ErrRepositoryNotFound) {
		return registry.ErrNotFound
	}
	return err
}
