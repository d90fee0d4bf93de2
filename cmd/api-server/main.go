package main

import (
	"context"
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

	_ "github.com/parsa-edu/transfer-appeal-api/api/swagger"
	"github.com/parsa-edu/transfer-appeal-api/internal/handler"
	"github.com/parsa-edu/transfer-appeal-api/internal/middleware"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
	"github.com/parsa-edu/transfer-appeal-api/internal/repository"
	"github.com/parsa-edu/transfer-appeal-api/internal/service"
	"github.com/parsa-edu/transfer-appeal-api/pkg/cache"
	"github.com/parsa-edu/transfer-appeal-api/pkg/config"
	"github.com/parsa-edu/transfer-appeal-api/pkg/database"
	"github.com/parsa-edu/transfer-appeal-api/pkg/jobs"
	"github.com/parsa-edu/transfer-appeal-api/pkg/logger"
	corsmiddleware "github.com/parsa-edu/transfer-appeal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/parsa-edu/transfer-appeal-api/pkg/middleware/requestid"
	"github.com/parsa-edu/transfer-appeal-api/pkg/storage"
)

// @title Transfer Appeal API
// @version 1.0.0
// @description Administrative dashboard backend for transfer appeal workflows
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	cacheEnabled := err == nil
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
	}

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	reasonRepo := repository.NewReasonRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	specRepo := repository.NewSpecRepository(db)
	opinionRepo := repository.NewOpinionRepository(db)
	transferReqRepo := repository.NewTransferRequestRepository(db)
	exportJobRepo := repository.NewExportJobRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	metrics := service.NewMetricsService()

	var cacheService *service.CacheService
	if cacheEnabled {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metrics, 5*time.Minute, logr, true)
	} else {
		cacheService = service.NewCacheService(nil, metrics, 5*time.Minute, logr, false)
	}

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()

	// Services.
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "transfer-appeal-api",
		Audience:           []string{"transfer-appeal-dashboard"},
	})
	userService := service.NewUserService(userRepo, validate, logr)

	listService := service.NewRequestListService(requestRepo, logr, service.RequestListServiceConfig{
		DefaultPageSize: cfg.Transfers.DefaultPageSize,
		MaxPageSize:     cfg.Transfers.MaxPageSize,
	})
	reviewService := service.NewReviewService(requestRepo, logr)
	personnelService := service.NewPersonnelService(personnelRepo, cacheService, logr, service.PersonnelServiceConfig{
		SearchLimit: cfg.Personnel.SearchLimit,
		CacheTTL:    cfg.Personnel.CacheTTL,
	})
	opinionService := service.NewOpinionService(requestRepo, reasonRepo, opinionRepo, personnelService, logr)
	reasonService := service.NewReasonService(reasonRepo, logr)
	specService := service.NewSpecService(specRepo)
	transferReqService := service.NewTransferRequestService(transferReqRepo, logr)
	statsService := service.NewStatsService(statsRepo, cacheService, cfg.Reports.CacheTTL, logr)

	exportService := service.NewExportService(requestRepo, specRepo, reasonRepo, statsService, store, signer, service.ExportConfig{
		APIPrefix:         cfg.APIPrefix,
		ResultTTL:         cfg.Exports.SignedURLTTL,
		EnrichConcurrency: cfg.Exports.EnrichConcurrency,
	}, logr)

	exportWorker := service.NewExportWorker(exportJobRepo, exportService, metrics, cfg.Exports.WorkerRetries, logr)
	exportQueue := jobs.NewQueue("exports", exportWorker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		Logger:     logr,
	})
	exportQueue.Start(ctx)
	defer exportQueue.Stop()

	exportJobService := service.NewExportJobService(exportJobRepo, exportQueue, exportService, logr, service.ExportJobServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
		MaxRetries:      cfg.Exports.WorkerRetries,
	})
	exportJobService.RecoverPendingJobs(ctx)
	exportJobService.StartCleanup(ctx)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	reviewHandler := handler.NewDocumentReviewHandler(listService, reviewService, cfg.Transfers.AutoCloseDelay)
	opinionHandler := handler.NewSourceOpinionHandler(opinionService)
	reasonHandler := handler.NewReasonHandler(reasonService)
	personnelHandler := handler.NewPersonnelHandler(personnelService)
	specHandler := handler.NewTransferSpecHandler(specService, listService)
	exportHandler := handler.NewExportHandler(exportJobService)
	reportHandler := handler.NewReportHandler(statsService, exportJobService)
	transferReqHandler := handler.NewTransferRequestHandler(transferReqService)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authService), authHandler.Logout)
		auth.POST("/change-password", middleware.JWT(authService), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authService), authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))
	{
		protected.GET("/document-review", reviewHandler.List)
		protected.GET("/document-review/:id", reviewHandler.Get)
		protected.PUT("/document-review",
			middleware.Audit(userRepo, models.AuditActionReviewSave, "document-review"),
			reviewHandler.Save)

		protected.GET("/approval-reasons", reasonHandler.ApprovalReasons)
		protected.GET("/transfer-settings/transfer-reasons", reasonHandler.TransferReasons)
		protected.POST("/clause-conditions/by-clauses", reasonHandler.ConditionsByClauses)

		protected.GET("/personnel-list", personnelHandler.Search)
		protected.GET("/personnel-stats", personnelHandler.Stats)

		protected.GET("/source-opinion/context", opinionHandler.Context)
		protected.POST("/source-opinion",
			middleware.Audit(userRepo, models.AuditActionOpinionSubmit, "source-opinion"),
			opinionHandler.Submit)

		protected.GET("/transfer-applicant-specs", specHandler.Get)
		protected.GET("/transfer-applicant-specs/helpers", specHandler.Helpers)

		protected.POST("/exports/transfer-appeals",
			middleware.Audit(userRepo, models.AuditActionExportRequested, "exports"),
			exportHandler.CreateTransferAppeals)
		protected.GET("/exports/:id", exportHandler.Status)

		protected.GET("/smart-school/reports", reportHandler.SmartSchool)
		protected.GET("/smart-school/reports/export",
			middleware.Audit(userRepo, models.AuditActionExportRequested, "smart-school"),
			reportHandler.Export)

		protected.GET("/transfer-requests", transferReqHandler.List)
		protected.POST("/transfer-requests/:id/respond",
			middleware.Audit(userRepo, models.AuditActionRequestRespond, "transfer-requests"),
			transferReqHandler.Respond)

		users := protected.Group("/users")
		users.Use(middleware.RequireRoles(models.RoleSystemAdmin))
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}

	// The download link is signed; it must work from a plain browser
	// navigation with no Authorization header.
	api.GET("/exports/:id/download", exportHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
