package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/audit"
	"github.com/harvesthub/agrismart-backend/internal/azure"
	"github.com/harvesthub/agrismart-backend/internal/config"
	"github.com/harvesthub/agrismart-backend/internal/gesture"
	"github.com/harvesthub/agrismart-backend/internal/handler"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/middleware"
	"github.com/harvesthub/agrismart-backend/internal/pdf"
	"github.com/harvesthub/agrismart-backend/internal/repository"
	"github.com/harvesthub/agrismart-backend/internal/security"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	pool   *pgxpool.Pool
	cfg    *config.Config
)

func main() {
	// Load .env in development; ignore absence in production
	_ = godotenv.Load()

	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database connection pool with pgx
	pool, err = pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Successfully connected to database")

	// Initialize Azure clients
	openAIClient, err := azure.NewOpenAIClient(
		cfg.Azure.OpenAI.Endpoint,
		cfg.Azure.OpenAI.APIKey,
		cfg.Azure.OpenAI.Deployment,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize Azure OpenAI client", zap.Error(err))
	}

	scanBlobClient, err := azure.NewBlobStorageClient(
		cfg.Azure.Storage.AccountName,
		cfg.Azure.Storage.AccountKey,
		cfg.Azure.Storage.ScanContainer,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize scan blob storage client", zap.Error(err))
	}

	reportBlobClient, err := azure.NewBlobStorageClient(
		cfg.Azure.Storage.AccountName,
		cfg.Azure.Storage.AccountKey,
		cfg.Azure.Storage.ReportContainer,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize report blob storage client", zap.Error(err))
	}

	// Initialize phone number encryption
	encryptor, err := security.NewEncryptor([]byte(cfg.Auth.EncryptionKey))
	if err != nil {
		logger.Fatal("Failed to initialize encryptor", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)
	taskRepo := repository.NewTaskRepository(pool, logger)
	marketRepo := repository.NewMarketRepository(pool, logger)
	communityRepo := repository.NewCommunityRepository(pool, logger)
	notificationRepo := repository.NewNotificationRepository(pool, logger)
	irrigationRepo := repository.NewIrrigationRepository(pool, logger)
	scanRepo := repository.NewScanRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		&service.LogOTPSender{Logger: logger},
		encryptor,
		[]byte(cfg.Auth.JWTSecret),
		cfg.Auth.TokenTTL,
		logger,
	)
	profileService := service.NewProfileService(profileRepo, logger)
	recommendationService := service.NewRecommendationService(logger)
	planService := service.NewPlanService(logger)
	taskService := service.NewTaskService(taskRepo, planService, logger)
	marketService := service.NewMarketService(marketRepo, cfg.Market.CacheTTL, logger)
	communityService := service.NewCommunityService(communityRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)
	irrigationService := service.NewIrrigationService(irrigationRepo, logger)
	scannerService := service.NewScannerService(openAIClient, scanBlobClient, scanRepo, logger)

	pdfGenerator := pdf.NewPDFGenerator(logger)
	reportService := service.NewReportService(
		reportRepo,
		profileService,
		planService,
		taskService,
		recommendationService,
		marketService,
		pdfGenerator,
		reportBlobClient,
		logger,
	)

	auditLogger := audit.NewLogger(pool, logger)

	// Seed the community feed on first boot
	if err := communityService.EnsureSeeded(context.Background()); err != nil {
		logger.Warn("Failed to seed community feed", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	profileHandler := handler.NewProfileHandler(profileService, auditLogger, logger)
	recommendationHandler := handler.NewRecommendationHandler(profileService, recommendationService, logger)
	planHandler := handler.NewPlanHandler(profileService, planService, taskService, auditLogger, logger)
	marketHandler := handler.NewMarketHandler(marketService, profileService, logger)
	communityHandler := handler.NewCommunityHandler(
		communityService,
		profileService,
		notificationService,
		gesture.DefaultDelay,
		logger,
	)
	scannerHandler := handler.NewScannerHandler(scannerService, logger)
	irrigationHandler := handler.NewIrrigationHandler(irrigationService, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)
	reportHandler := handler.NewReportHandler(reportService, auditLogger, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.TracingMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))
	r.Use(middleware.SlowRequestLoggingMiddleware(logger, 1*time.Second))
	r.Use(metrics.Middleware())

	// Health and metrics endpoints
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth endpoints
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/otp/request", authHandler.RequestOTP)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
	}

	// Authenticated endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))
	{
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.SaveProfile)
		api.PUT("/profile/active-crop", profileHandler.SetActiveCrop)

		api.GET("/crops", recommendationHandler.ListCrops)
		api.GET("/recommendations", recommendationHandler.Recommend)

		api.GET("/plan/stages", planHandler.GetStages)
		api.GET("/plan/tasks", planHandler.GetTasks)
		api.PATCH("/plan/tasks/:id", planHandler.UpdateTask)

		api.GET("/market/quotes", marketHandler.ListQuotes)
		api.GET("/market/quote", marketHandler.GetActiveQuote)
		api.POST("/market/refresh", marketHandler.RefreshSnapshot)

		api.GET("/community/feed", communityHandler.GetFeed)
		api.POST("/community/feed/refresh", communityHandler.RefreshFeed)
		api.POST("/community/posts", communityHandler.CreatePost)
		api.POST("/community/posts/:id/like", communityHandler.LikePost)

		api.POST("/scan", scannerHandler.Analyze)
		api.GET("/scan/history", scannerHandler.History)

		api.GET("/irrigation/zones", irrigationHandler.ListZones)
		api.POST("/irrigation/zones/:id/toggle", irrigationHandler.ToggleZone)
		api.POST("/irrigation/rain-delay", irrigationHandler.ApplyRainDelay)

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
		api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		api.DELETE("/notifications/:id", notificationHandler.Remove)
		api.DELETE("/notifications", notificationHandler.Clear)

		api.POST("/reports", reportHandler.Generate)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/:id/download", reportHandler.Download)
	}

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	pool.Close()

	logger.Info("Server exited")
}

// healthCheck reports service and database status
func healthCheck(c *gin.Context) {
	if err := pool.Ping(c.Request.Context()); err != nil {
		logger.Error("health check failed: database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"service":  "agrismart-backend",
		"version":  "1.0.0",
	})
}
