package usecase

import (
	digestRepo "repodigest/internal/digest/repository"
	"repodigest/internal/generation"
	"repodigest/internal/registry"
	"repodigest/internal/summary/repository"
	pkgLog "repodigest/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.SummaryRepository
	digests    digestRepo.DigestRepository
	registryUC registry.UseCase
	gateway    generation.Gateway
}

// New creates a new summary UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.SummaryRepository,
	digests digestRepo.DigestRepository,
	registryUC registry.UseCase,
	gateway generation.Gateway,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		digests:    digests,
		registryUC: registryUC,
		gateway:    gateway,
	}
}
