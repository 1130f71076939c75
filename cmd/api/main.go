package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"repodigest/config"
	"repodigest/config/sqlite"
	"repodigest/internal/cache"
	digestHTTP "repodigest/internal/digest/delivery/http"
	digestSqlite "repodigest/internal/digest/repository/sqlite"
	digestUsecase "repodigest/internal/digest/usecase"
	eventHTTP "repodigest/internal/event/delivery/http"
	eventSqlite "repodigest/internal/event/repository/sqlite"
	eventUsecase "repodigest/internal/event/usecase"
	"repodigest/internal/generation"
	"repodigest/internal/httpserver"
	"repodigest/internal/pipeline"
	registryHTTP "repodigest/internal/registry/delivery/http"
	registrySqlite "repodigest/internal/registry/repository/sqlite"
	registryUsecase "repodigest/internal/registry/usecase"
	"repodigest/internal/scheduler"
	taskSqlite "repodigest/internal/scheduler/repository/sqlite"
	summaryHTTP "repodigest/internal/summary/delivery/http"
	summarySqlite "repodigest/internal/summary/repository/sqlite"
	summaryUsecase "repodigest/internal/summary/usecase"
	"repodigest/internal/webhook"
	"repodigest/pkg/gemini"
	"repodigest/pkg/github"
	"repodigest/pkg/log"
)

// @title       RepoDigest API
// @description Turns GitHub push and pull request activity into AI-generated digests, impact analyses, and period summaries.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting RepoDigest...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Database: %s", cfg.Database.DSN)

	if cfg.Gemini.APIKey == "" {
		logger.Warn(ctx, "GEMINI_API_KEY not set, digests run only for owners with their own credential")
	}
	if cfg.Webhook.Secret == "" {
		logger.Warn(ctx, "WEBHOOK_SECRET not set, webhook signatures will not be verified")
	}

	// 3. Storage
	db, err := sqlite.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Error(ctx, "Failed to connect database: ", err)
		return
	}
	defer func() {
		if dErr := sqlite.Disconnect(context.Background(), db); dErr != nil {
			logger.Warnf(ctx, "Failed to close database: %v", dErr)
		}
	}()

	eventRepo := eventSqlite.New(db, logger)
	digestRepo := digestSqlite.New(db, logger)
	summaryRepo := summarySqlite.New(db, logger)
	registryRepo := registrySqlite.New(db, logger)
	credentialRepo := registrySqlite.NewCredential(db, logger)
	taskRepo := taskSqlite.New(db, logger)

	// 4. Collaborators
	contentCache, err := cache.New()
	if err != nil {
		logger.Error(ctx, "Failed to initialize content cache: ", err)
		return
	}

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
	if cfg.Gemini.Model != "" {
		geminiClient.SetModel(cfg.Gemini.Model)
	}

	githubClient := github.NewClient(ctx, cfg.GitHub.Token)

	gateway := generation.NewGateway(logger, geminiClient, contentCache)
	diffProvider := generation.NewDiffProvider(githubClient)

	// 5. Scheduler
	schedClient := scheduler.NewClient(taskRepo)
	worker, err := scheduler.NewWorker(scheduler.Config{
		Repo:         taskRepo,
		Logger:       logger,
		Concurrency:  cfg.Scheduler.Concurrency,
		PollInterval: cfg.Scheduler.PollInterval,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize task worker: ", err)
		return
	}

	// 6. UseCases
	registryUC := registryUsecase.New(logger, registryRepo, credentialRepo, cfg.Gemini.APIKey)
	eventUC := eventUsecase.New(logger, eventRepo, schedClient)
	digestUC := digestUsecase.New(logger, digestRepo, eventRepo, registryUC, gateway, diffProvider, schedClient)
	summaryUC := summaryUsecase.New(logger, summaryRepo, digestRepo, registryUC, gateway)

	worker.Register(pipeline.TaskDigestRun, digestUC.RunHandler())
	worker.Register(pipeline.TaskImpactAnalysis, digestUC.ImpactHandler())
	worker.Register(pipeline.TaskSummaryRollup, summaryUC.RollupHandler())

	go func() {
		if wErr := worker.Run(ctx); wErr != nil && wErr != context.Canceled {
			logger.Errorf(ctx, "Task worker stopped: %v", wErr)
		}
	}()

	// 7. Webhook intake
	webhookHandler := webhook.NewHandler(eventUC, registryUC, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, logger)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		WebhookHandler:  webhookHandler,
		DigestHandler:   digestHTTP.New(logger, digestUC),
		EventHandler:    eventHTTP.New(logger, eventUC),
		SummaryHandler:  summaryHTTP.New(logger, summaryUC),
		RegistryHandler: registryHTTP.New(logger, registryUC),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
