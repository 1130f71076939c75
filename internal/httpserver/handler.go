package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	digestHTTP "repodigest/internal/digest/delivery/http"
	eventHTTP "repodigest/internal/event/delivery/http"
	"repodigest/internal/model"
	registryHTTP "repodigest/internal/registry/delivery/http"
	summaryHTTP "repodigest/internal/summary/delivery/http"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.webhookHandler != nil {
		srv.gin.POST("/webhooks/github", srv.webhookHandler.HandleGitHubWebhook)
		srv.l.Infof(ctx, "GitHub webhook route registered at POST /webhooks/github")
	} else {
		srv.l.Warnf(ctx, "Webhook handler not configured, skipping intake route")
	}

	api := srv.gin.Group("/api/v1")

	if srv.digestHandler != nil {
		digestHTTP.RegisterRoutes(api, srv.digestHandler)
	}
	if srv.eventHandler != nil {
		eventHTTP.RegisterRoutes(api, srv.eventHandler)
	}
	if srv.summaryHandler != nil {
		summaryHTTP.RegisterRoutes(api, srv.summaryHandler)
	}
	if srv.registryHandler != nil {
		registryHTTP.RegisterRoutes(api, srv.registryHandler)
	}

	srv.l.Infof(ctx, "Domain routes registered under /api/v1")
}
