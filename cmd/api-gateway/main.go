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
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/plant-shift-api/api/swagger"
	"github.com/noah-isme/plant-shift-api/internal/handler"
	"github.com/noah-isme/plant-shift-api/internal/middleware"
	"github.com/noah-isme/plant-shift-api/internal/models"
	"github.com/noah-isme/plant-shift-api/internal/repository"
	"github.com/noah-isme/plant-shift-api/internal/service"
	"github.com/noah-isme/plant-shift-api/pkg/cache"
	"github.com/noah-isme/plant-shift-api/pkg/config"
	"github.com/noah-isme/plant-shift-api/pkg/database"
	"github.com/noah-isme/plant-shift-api/pkg/jalali"
	"github.com/noah-isme/plant-shift-api/pkg/jobs"
	"github.com/noah-isme/plant-shift-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/plant-shift-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/plant-shift-api/pkg/middleware/requestid"
	"github.com/noah-isme/plant-shift-api/pkg/storage"
)

// @title Plant Shift Handover API
// @version 1.0.0
// @description Shift report drafting, validation and submission for the processing plant.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type handlers struct {
	metrics   *handler.MetricsHandler
	calendar  *handler.CalendarHandler
	personnel *handler.PersonnelHandler
	drafts    *handler.ShiftDraftHandler
	reports   *handler.ShiftReportHandler
}

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck
	if err := database.Migrate(ctx, db); err != nil {
		logr.Fatal("failed to migrate schema", zap.Error(err))
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close() //nolint:errcheck

	reference, ok := jalali.Parse(cfg.Shift.RotationReference)
	if !ok {
		logr.Fatal("invalid rotation reference date", zap.String("value", cfg.Shift.RotationReference))
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	reportRepo := repository.NewShiftReportRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	codeRepo := repository.NewTrackingCodeRepository(db)
	draftRepo := repository.NewDraftRepository(redisClient, logr)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)
	calendarSvc := service.NewCalendarService(logr)
	rotationSvc, err := service.NewRotationService(reference, logr)
	if err != nil {
		logr.Fatal("failed to init rotation", zap.Error(err))
	}
	personnelSvc := service.NewPersonnelService(personnelRepo, cacheSvc, validate, logr)
	if err := personnelSvc.ResetCache(ctx); err != nil {
		logr.Warn("failed to reset roster cache", zap.Error(err))
	}
	reportSvc := service.NewShiftReportService(reportRepo, cacheSvc, metricsSvc, validate, logr)
	compiler := service.NewReportCompiler(codeRepo, reportRepo, metricsSvc, service.ReportCompilerConfig{
		CodePrefix:     cfg.TrackingCode.Prefix,
		RandomFallback: cfg.TrackingCode.RandomFallback,
	}, logr)

	var archiveStore *storage.LocalStorage
	if cfg.Archive.Enabled {
		archiveStore, err = storage.NewLocalStorage(cfg.Archive.StorageDir)
		if err != nil {
			logr.Fatal("failed to init archive storage", zap.Error(err))
		}
	}
	exportSvc := service.NewExportService(nil, nil, nil, nil, logr)
	var archiver interface {
		ScheduleArchive(*models.ShiftReport) error
	}
	if archiveStore != nil {
		signer := storage.NewURLSigner(cfg.Archive.LinkSecret, cfg.Archive.LinkTTL)
		exportSvc = service.NewExportService(archiveStore, nil, nil, signer, logr)
		queue := jobs.NewQueue("shift-report-archive", exportSvc.HandleArchiveJob, jobs.QueueConfig{
			Workers:    cfg.Archive.Workers,
			MaxRetries: cfg.Archive.Retries,
			OnResult: func(job jobs.Job, err error) {
				if err != nil {
					metricsSvc.RecordArchiveJob("discarded")
					return
				}
				metricsSvc.RecordArchiveJob("archived")
			},
			Logger: logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		archiver = service.NewReportArchiver(queue)
		exportSvc.StartRetention(ctx, cfg.Archive.CleanupInterval, cfg.Archive.Retention)
	}

	draftSvc := service.NewDraftService(
		draftRepo,
		personnelSvc,
		rotationSvc,
		service.NewSectionValidator(validate),
		compiler,
		archiver,
		metricsSvc,
		validate,
		service.DraftConfig{TTL: cfg.Shift.DraftTTL, DefaultDuration: cfg.Shift.DefaultDuration()},
		logr,
	)

	authSvc := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))

	h := handlers{
		metrics:   handler.NewMetricsHandler(metricsSvc),
		calendar:  handler.NewCalendarHandler(calendarSvc, rotationSvc),
		personnel: handler.NewPersonnelHandler(personnelSvc),
		drafts:    handler.NewShiftDraftHandler(draftSvc),
		reports:   handler.NewShiftReportHandler(reportSvc, exportSvc),
	}

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", h.metrics.Prometheus)
	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET(cfg.APIPrefix+"/downloads/:token", h.reports.Download)
	registerRoutes(r.Group(cfg.APIPrefix), h, authSvc, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func registerRoutes(api *gin.RouterGroup, h handlers, auth *service.AuthService, logr *zap.Logger) {
	api.Use(middleware.JWT(auth))

	readers := middleware.RequireRoles(models.RoleSupervisor, models.RoleManager, models.RoleAdmin)
	editors := middleware.RequireRoles(models.RoleSupervisor, models.RoleAdmin)

	api.GET("/calendar/convert", readers, h.calendar.Convert)
	api.GET("/rotations", readers, h.calendar.Rotation)
	api.GET("/personnel", readers, h.personnel.List)
	api.GET("/metrics/summary", middleware.RequireRoles(models.RoleManager, models.RoleAdmin), h.metrics.Summary)

	drafts := api.Group("/shift-drafts", editors, middleware.Audit(logr, "shift_draft"))
	drafts.POST("", h.drafts.Start)
	drafts.GET("/current", h.drafts.Current)
	drafts.DELETE("/current", h.drafts.Discard)
	drafts.PUT("/current/info", h.drafts.UpdateInfo)
	drafts.PUT("/current/attendance", h.drafts.MarkAttendance)
	drafts.PUT("/current/feed/tonnage", h.drafts.SetTonnage)
	drafts.PUT("/current/feed/component", h.drafts.SetFeedComponent)
	drafts.PUT("/current/equipment", h.drafts.UpdateEquipment)
	drafts.PUT("/current/downtime", h.drafts.UpdateDowntime)
	drafts.PUT("/current/notes", h.drafts.SetNotes)
	drafts.POST("/current/dictation", h.drafts.AppendDictation)
	drafts.POST("/current/next", h.drafts.Next)
	drafts.POST("/current/previous", h.drafts.Previous)
	drafts.POST("/current/goto/:section", h.drafts.GoTo)
	drafts.POST("/current/submit", h.drafts.Submit)

	reports := api.Group("/shift-reports", readers)
	reports.GET("", h.reports.List)
	reports.GET("/:code", h.reports.Get)
	reports.GET("/:code/export", h.reports.Export)
	reports.POST("/:code/links", h.reports.Link)
}
