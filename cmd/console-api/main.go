package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/api/swagger"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/handler"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/middleware"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/models"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/repository"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/service"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/cache"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/config"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/database"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/logger"
	corsmiddleware "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/middleware/cors"
	reqidmiddleware "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/middleware/requestid"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/response"
	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/storage"
)

// @title Classroom Console API
// @version 1.0.0
// @description Weekly classroom schedule service for the management console
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, running without cache and live invalidation", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Schedule.CacheTTL, logr, cfg.Schedule.CacheEnabled && redisClient != nil)

	occurrenceRepo := repository.NewOccurrenceRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	weeklySvc := service.NewWeeklyScheduleService(occurrenceRepo, referenceRepo, cacheSvc, cfg.Schedule.CacheTTL, cfg.Schedule.FetchTimeout, logr).WithMetrics(metricsSvc)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)

	viewRegistry := service.NewWeekViewRegistry(weeklySvc, cfg.Schedule.DebounceWindow, logr)
	defer viewRegistry.CloseAll()

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(weeklySvc, store, signer, validate, logr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if exportSvc != nil && cfg.Exports.CleanupInterval > 0 {
		go exportSvc.RunCleanup(ctx, cfg.Exports.CleanupInterval, cfg.Exports.SignedURLTTL)
	}

	if redisClient != nil {
		listener := service.NewInvalidationListener(
			repository.NewRedisEventSource(redisClient),
			cfg.Events.Channels,
			func(ctx context.Context, event string) {
				metricsSvc.CountEvent(event)
				if err := weeklySvc.InvalidateGrids(ctx); err != nil {
					logr.Warn("grid invalidation failed", zap.Error(err))
				}
				viewRegistry.RefreshAll()
			},
			cfg.Events.QueueBuffer,
			logr,
		)
		if err := listener.Subscribe(ctx); err != nil {
			logr.Sugar().Warnw("live invalidation disabled", "error", err)
		} else {
			defer listener.Close()
		}
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
	r.Use(response.WithMeta())

	probes := map[string]handler.Pinger{
		"postgres": handler.PingerFunc(db.PingContext),
	}
	if redisClient != nil {
		probes["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	weeklyHandler := handler.NewWeeklyScheduleHandler(weeklySvc, exportSvc)
	sessionHandler := handler.NewSessionHandler(viewRegistry)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, probes)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))

	api.GET("/schedules/weekly", weeklyHandler.Get)
	api.GET("/schedules/weekly/reference", middleware.RequireRoles(models.RoleAdmin), weeklyHandler.References)
	api.POST("/schedules/weekly/sessions", sessionHandler.Open)
	api.GET("/schedules/weekly/sessions/:id", sessionHandler.State)
	api.POST("/schedules/weekly/sessions/:id/navigate", sessionHandler.Navigate)
	api.DELETE("/schedules/weekly/sessions/:id", sessionHandler.Close)
	if exportSvc != nil {
		api.POST("/schedules/weekly/export", weeklyHandler.Export)
		r.GET("/exports/download", weeklyHandler.Download)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
