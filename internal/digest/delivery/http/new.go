package http

import (
	"github.com/gin-gonic/gin"

	"repodigest/internal/digest"
	"repodigest/pkg/log"
)

// Handler is the public interface for the digest HTTP delivery layer.
type Handler interface {
	Detail(c *gin.Context)
	List(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc digest.UseCase
}

// New creates a new HTTP handler for the digest domain.
func New(l log.Logger, uc digest.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
