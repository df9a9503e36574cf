package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lumora-labs/coursecraft-api/api/swagger"
	"github.com/lumora-labs/coursecraft-api/internal/content"
	"github.com/lumora-labs/coursecraft-api/internal/handler"
	"github.com/lumora-labs/coursecraft-api/internal/lifecycle"
	"github.com/lumora-labs/coursecraft-api/internal/middleware"
	"github.com/lumora-labs/coursecraft-api/internal/render"
	"github.com/lumora-labs/coursecraft-api/internal/repository"
	"github.com/lumora-labs/coursecraft-api/internal/service"
	"github.com/lumora-labs/coursecraft-api/pkg/cache"
	"github.com/lumora-labs/coursecraft-api/pkg/config"
	"github.com/lumora-labs/coursecraft-api/pkg/database"
	"github.com/lumora-labs/coursecraft-api/pkg/jobs"
	"github.com/lumora-labs/coursecraft-api/pkg/logger"
	corsmiddleware "github.com/lumora-labs/coursecraft-api/pkg/middleware/cors"
	reqidmiddleware "github.com/lumora-labs/coursecraft-api/pkg/middleware/requestid"
)

// @title CourseCraft API
// @version 1.0.0
// @description Educational material tracking and generation service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, stats caching disabled", "error", err)
		redisClient = nil
	}

	layout, err := content.NewLayout(cfg.Content.RootDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare content root", "root", cfg.Content.RootDir, "error", err)
	}

	subjectRepo := repository.NewSubjectRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	cloRepo := repository.NewCLORepository(db)
	taskRepo := repository.NewTaskRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	coordinator := lifecycle.NewCoordinator(layout, render.NewRegistry(), logr)
	metricsSvc := service.NewMetricsService()

	var statsCache *repository.CacheRepository
	if redisClient != nil {
		statsCache = repository.NewCacheRepository(redisClient, logr)
	}

	subjectSvc := service.NewSubjectService(subjectRepo, nil, logr)
	topicSvc := service.NewTopicService(topicRepo, subjectRepo, nil, logr)
	materialSvc := service.NewMaterialService(materialRepo, topicRepo, subjectRepo, cloRepo, coordinator, logr)
	generationSvc := service.NewGenerationService(subjectRepo, topicRepo, materialRepo, cloRepo, coordinator, metricsSvc, nil, logr)
	var statsSvc *service.StatsService
	if statsCache != nil {
		statsSvc = service.NewStatsService(statsRepo, statsCache, metricsSvc, cfg.Stats.CacheTTL, logr)
	} else {
		statsSvc = service.NewStatsService(statsRepo, nil, metricsSvc, cfg.Stats.CacheTTL, logr)
	}

	// The queue and the task service reference each other: the service
	// enqueues, the queue dispatches back into the service.
	var taskSvc *service.TaskService
	queue := jobs.NewQueue("generation", func(ctx context.Context, job jobs.Job) error {
		return taskSvc.Process(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Generator.WorkerConcurrency,
		MaxRetries: cfg.Generator.WorkerRetries,
		RetryDelay: cfg.Generator.RetryDelay,
		Logger:     logr,
	})
	taskSvc = service.NewTaskService(taskRepo, subjectRepo, topicRepo, generationSvc, queue, metricsSvc, cfg.Generator.WorkerRetries, nil, logr)

	if cfg.Generator.Enabled {
		queue.Start(context.Background())
	} else {
		logr.Info("task worker disabled; queued tasks stay pending")
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Subjects:  handler.NewSubjectHandler(subjectSvc, statsSvc),
		Topics:    handler.NewTopicHandler(topicSvc, statsSvc),
		Materials: handler.NewMaterialHandler(materialSvc, statsSvc),
		Tasks:     handler.NewTaskHandler(taskSvc, statsSvc),
		Generate:  handler.NewGenerateHandler(generationSvc, statsSvc),
		Stats:     handler.NewStatsHandler(statsSvc),
		Utils:     handler.NewUtilsHandler(),
		Health:    handler.NewHealthHandler(db, redisClient),
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "content_root", layout.Root())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	queue.Stop()
}
