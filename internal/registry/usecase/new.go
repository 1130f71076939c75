package usecase

import (
	"repodigest/internal/registry/repository"
	pkgLog "repodigest/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.RegistryRepository
	creds      repository.CredentialRepository
	serviceKey string
}

// New creates a new registry UseCase instance. serviceKey is the shared
// generation credential used when an owner has no key of their own; it may
// be empty, in which case keyless owners are skipped by the pipeline.
func New(
	l pkgLog.Logger,
	repo repository.RegistryRepository,
	creds repository.CredentialRepository,
	serviceKey string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		creds:      creds,
		serviceKey: serviceKey,
	}
}
