package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	digests := rg.Group("/digests")
	{
		digests.GET("", h.List)
		digests.GET("/:id", h.Detail)
	}
}
