package http

import (
	"github.com/gin-gonic/gin"

	"repodigest/internal/registry"
	"repodigest/pkg/log"
)

// Handler is the public interface for the registry HTTP delivery layer.
type Handler interface {
	Register(c *gin.Context)
	List(c *gin.Context)
	SetCredential(c *gin.Context)
	SetCodeIndexStatus(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc registry.UseCase
}

// New creates a new HTTP handler for the registry domain.
func New(l log.Logger, uc registry.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
