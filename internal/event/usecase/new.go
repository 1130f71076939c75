package usecase

import (
	"repodigest/internal/event/repository"
	"repodigest/internal/scheduler"
	pkgLog "repodigest/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	repo  repository.EventRepository
	sched scheduler.Client
}

// New creates a new event UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.EventRepository,
	sched scheduler.Client,
) *implUseCase {
	return &implUseCase{
		l:     l,
		repo:  repo,
		sched: sched,
	}
}
