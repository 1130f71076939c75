package webhook

import (
	"repodigest/internal/event"
	"repodigest/internal/registry"
	pkgLog "repodigest/pkg/log"
)

type Handler struct {
	eventUC    event.UseCase
	registryUC registry.UseCase
	security   *SecurityValidator
	parser     *GitHubWebhookParser
	l          pkgLog.Logger
}

func NewHandler(
	eventUC event.UseCase,
	registryUC registry.UseCase,
	securityConfig SecurityConfig,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		eventUC:    eventUC,
		registryUC: registryUC,
		security:   NewSecurityValidator(securityConfig),
		parser:     NewGitHubParser(),
		l:          l,
	}
}
