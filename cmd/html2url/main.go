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

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/html2url/api/swagger"
	"github.com/noah-isme/html2url/internal/handler"
	"github.com/noah-isme/html2url/internal/middleware"
	"github.com/noah-isme/html2url/internal/service"
	"github.com/noah-isme/html2url/pkg/config"
	"github.com/noah-isme/html2url/pkg/logger"
	corsmiddleware "github.com/noah-isme/html2url/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/html2url/pkg/middleware/requestid"
	timingmiddleware "github.com/noah-isme/html2url/pkg/middleware/timing"
	"github.com/noah-isme/html2url/pkg/storage"
)

// @title html2url
// @version 1.3.0
// @description Stores HTML payloads under temporary URLs and renders PDF versions with Gotenberg.
// @BasePath /
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

	store, err := storage.NewStore(cfg.Storage.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init storage", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var renderer service.Renderer
	if cfg.PDF.Enabled {
		renderer = service.NewGotenbergRenderer(service.GotenbergConfig{
			URL:           cfg.PDF.GotenbergURL,
			RenderTimeout: cfg.PDF.RenderTimeout,
			HealthTimeout: cfg.PDF.HealthTimeout,
		}, logr)
	}

	submissionSvc := service.NewSubmissionService(store, renderer, metricsSvc, logr, service.SubmissionConfig{
		BaseURL:          cfg.BaseURL,
		MaxContentLength: cfg.Upload.MaxContentLength,
		PDFEnabled:       cfg.PDF.Enabled,
	})

	statsSvc := service.NewStatsService(store, service.StatsConfig{
		MaxFileAge:       cfg.Retention.MaxFileAge,
		MaxContentLength: cfg.Upload.MaxContentLength,
		APIKeyRequired:   cfg.Upload.APIKey != "",
		PDFEnabled:       cfg.PDF.Enabled,
	})

	retention := service.NewRetention(store, metricsSvc, logr, service.RetentionConfig{
		MaxFileAge:      cfg.Retention.MaxFileAge,
		CleanupInterval: cfg.Retention.CleanupInterval,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retention.Start(ctx)
	defer retention.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(timingmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Metrics(metricsSvc))

	var uploadLimiter, filesLimiter, statsLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		uploadLimiter = middleware.NewRateLimiter(30, time.Hour)
		filesLimiter = middleware.NewRateLimiter(100, time.Minute)
		statsLimiter = middleware.NewRateLimiter(10, time.Minute)
	}

	uploadHandler := handler.NewUploadHandler(submissionSvc)
	filesHandler := handler.NewFilesHandler(store, handler.FilesConfig{
		CSPPolicy:   cfg.Serve.CSPPolicy,
		CacheMaxAge: cfg.Serve.CacheMaxAge,
	})
	systemHandler := handler.NewSystemHandler(statsSvc, renderer, handler.SystemConfig{
		BaseURL:        cfg.BaseURL,
		MaxFileAge:     cfg.Retention.MaxFileAge,
		MaxContentSize: cfg.Upload.MaxContentLength,
		APIKeyRequired: cfg.Upload.APIKey != "",
		PDFEnabled:     cfg.PDF.Enabled,
	})

	r.POST("/upload", middleware.RateLimit(uploadLimiter), middleware.APIKey(cfg.Upload.APIKey, logr), uploadHandler.Upload)
	r.GET("/files/:name", middleware.RateLimit(filesLimiter), filesHandler.Serve)
	r.GET("/stats", middleware.RateLimit(statsLimiter), systemHandler.Stats)
	r.GET("/health", systemHandler.Health)
	r.GET("/", systemHandler.Index)
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "pdf_enabled", cfg.PDF.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
