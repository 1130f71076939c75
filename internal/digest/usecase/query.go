package usecase

import (
	"context"
	"errors"

	"repodigest/internal/digest"
	"repodigest/internal/digest/repository"
	"repodigest/internal/model"
)

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, id string) (model.Digest, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrDigestNotFound) {
		return model.Digest{}, digest.ErrNotFound
	}
	return d, err
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input digest.ListInput) ([]model.Digest, error) {
	if input.RepositoryID == "" {
		return nil, digest.ErrMissingRepository
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	return uc.repo.ListByRepository(ctx, input.RepositoryID, input.From, input.To, limit)
}
