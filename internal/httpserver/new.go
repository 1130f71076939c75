package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	digestHTTP "repodigest/internal/digest/delivery/http"
	eventHTTP "repodigest/internal/event/delivery/http"
	registryHTTP "repodigest/internal/registry/delivery/http"
	summaryHTTP "repodigest/internal/summary/delivery/http"
	"repodigest/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Webhook intake
	webhookHandler interface {
		HandleGitHubWebhook(c *gin.Context)
	}

	// Read API + registry
	digestHandler   digestHTTP.Handler
	eventHandler    eventHTTP.Handler
	summaryHandler  summaryHTTP.Handler
	registryHandler registryHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	WebhookHandler interface {
		HandleGitHubWebhook(c *gin.Context)
	}

	DigestHandler   digestHTTP.Handler
	EventHandler    eventHTTP.Handler
	SummaryHandler  summaryHTTP.Handler
	RegistryHandler registryHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		webhookHandler:  cfg.WebhookHandler,
		digestHandler:   cfg.DigestHandler,
		eventHandler:    cfg.EventHandler,
		summaryHandler:  cfg.SummaryHandler,
		registryHandler: cfg.RegistryHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
