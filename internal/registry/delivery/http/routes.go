package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	repos := rg.Group("/repositories")
	{
		repos.POST("", h.Register)
		repos.GET("", h.List)
		repos.PUT("/:id/code-index", h.SetCodeIndexStatus)
	}
	rg.PUT("/credentials", h.SetCredential)
}
