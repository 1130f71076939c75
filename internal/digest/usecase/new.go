package usecase

import (
	"repodigest/internal/digest/repository"
	eventRepo "repodigest/internal/event/repository"
	"repodigest/internal/generation"
	"repodigest/internal/registry"
	"repodigest/internal/scheduler"
	pkgLog "repodigest/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.DigestRepository
	events     eventRepo.EventRepository
	registryUC registry.UseCase
	gateway    generation.Gateway
	diffs      generation.DiffProvider
	sched      scheduler.Client
}

// New creates a new digest UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.DigestRepository,
	events eventRepo.EventRepository,
	registryUC registry.UseCase,
	gateway generation.Gateway,
	diffs generation.DiffProvider,
	sched scheduler.Client,
) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		events:     events,
		registryUC: registryUC,
		gateway:    gateway,
		diffs:      diffs,
		sched:      sched,
	}
}
