package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"investmap/internal/caching"
	"investmap/internal/config"
	"investmap/internal/handlers"
	"investmap/internal/jobs"
	"investmap/internal/jobs/background"
	"investmap/internal/middleware"
	"investmap/internal/repositories"
	"investmap/internal/services"
	"investmap/pkg/database"
)

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Application configuration (job cadence, billing knobs, storage limits)
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}
	jwksURL := os.Getenv("AUTH_JWKS_URL")

	webhookSecret := os.Getenv("BILLING_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Printf("WARNING: BILLING_WEBHOOK_SECRET is not set; webhook endpoint disabled")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	deckSvc, err := services.NewDeckService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize deck storage: %v", err)
	}
	if err := deckSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARNING: Failed to ensure deck bucket exists: %v", err)
	}

	// Create repositories
	startupsRepo := repositories.NewStartupsRepo(pool)
	orgsRepo := repositories.NewOrganizationsRepo(pool)
	usersRepo := repositories.NewInvestorUsersRepo(pool)
	sessionsRepo := repositories.NewSessionsRepo(pool)
	auditLogsRepo := repositories.NewAuditLogsRepo(pool)
	favoritesRepo := repositories.NewFavoritesRepo(pool)
	searchesRepo := repositories.NewSavedSearchesRepo(pool)
	notificationsRepo := repositories.NewNotificationsRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	auditSvc := services.NewAuditService(auditLogsRepo)
	sessionMonitor := services.NewSessionMonitor(usersRepo, sessionsRepo, auditSvc, cacheSvc)
	seatSvc := services.NewSeatService(usersRepo, orgsRepo, auditSvc, sessionMonitor)
	startupSvc := services.NewStartupService(startupsRepo, cacheSvc)
	favoritesSvc := services.NewFavoritesService(favoritesRepo, startupsRepo, cacheSvc)
	alertsSvc := services.NewAlertsService(searchesRepo, notificationsRepo)
	billingSvc := services.NewBillingService(startupsRepo, orgsRepo, auditSvc, cacheSvc)
	authSvc := services.NewAuthService(usersRepo, orgsRepo, sessionMonitor, cacheSvc, jwtSecret)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, usersRepo)
	startupHandlers := handlers.NewStartupHandlers(startupSvc, deckSvc, cfg.Storage)
	rankingHandlers := handlers.NewRankingHandlers(startupSvc)
	seatHandlers := handlers.NewSeatHandlers(seatSvc)
	favoriteHandlers := handlers.NewFavoriteHandlers(favoritesSvc)
	savedSearchHandlers := handlers.NewSavedSearchHandlers(searchesRepo, notificationsRepo)
	auditLogHandlers := handlers.NewAuditLogHandlers(auditSvc, usersRepo)
	webhookHandlers := handlers.NewWebhookHandlers(billingSvc, cfg.Billing, webhookSecret)

	// Middleware
	jwtMW, err := middleware.JWTMiddleware(usersRepo, jwtSecret, jwksURL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT middleware: %v", err)
	}
	seatMW := middleware.NewSeatMiddleware(sessionMonitor)

	// Background jobs
	alertJob := jobs.NewAlertMatchJob(startupsRepo, alertsSvc,
		time.Duration(cfg.Jobs.AlertLookbackHours)*time.Hour)
	scheduler, err := background.NewJobScheduler(alertJob, startupSvc, sessionsRepo, cfg.Jobs)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// HTTP server
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Public routes
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", handlers.ReadinessCheck)
	e.GET("/health/detailed", func(c echo.Context) error {
		return handlers.HealthCheckDetailed(c, pool)
	})
	e.POST("/auth/signup", authHandlers.Signup)
	e.POST("/auth/login", authHandlers.Login)
	if webhookSecret != "" {
		e.POST("/webhooks/billing", webhookHandlers.BillingWebhook)
	}

	// Protected routes: valid JWT plus an active seat with a live session
	api := e.Group("", jwtMW, seatMW.RequireActiveSeat())

	api.POST("/auth/logout", authHandlers.Logout)
	api.GET("/auth/me", authHandlers.Me)

	api.POST("/startups", startupHandlers.RegisterStartup)
	api.GET("/startups", startupHandlers.ListStartups)
	api.GET("/startups/:id", startupHandlers.GetStartup)
	api.PUT("/startups/:id", startupHandlers.UpdateStartup)
	api.POST("/startups/search", startupHandlers.SearchStartups)
	api.POST("/startups/:id/deck", startupHandlers.UploadDeck)
	api.GET("/startups/:id/deck", startupHandlers.GetDeckURL)
	api.POST("/startups/:id/favorite", favoriteHandlers.ToggleFavorite)
	api.GET("/startups/:id/hearts", favoriteHandlers.GetHeartCount)

	api.GET("/rankings", rankingHandlers.GetRankings)
	api.GET("/rankings/:id", rankingHandlers.GetScore)

	api.POST("/seats/activate", seatHandlers.ActivateSeat)
	api.POST("/seats/deactivate", seatHandlers.DeactivateSeat)
	api.GET("/seats/usage", seatHandlers.GetSeatUsage)

	api.GET("/favorites", favoriteHandlers.ListFavorites)

	api.POST("/saved-searches", savedSearchHandlers.CreateSavedSearch)
	api.GET("/saved-searches", savedSearchHandlers.ListSavedSearches)
	api.PUT("/saved-searches/:id", savedSearchHandlers.UpdateSavedSearch)
	api.DELETE("/saved-searches/:id", savedSearchHandlers.DeleteSavedSearch)
	api.GET("/notifications", savedSearchHandlers.ListNotifications)
	api.POST("/notifications/:id/read", savedSearchHandlers.MarkNotificationRead)

	api.GET("/audit-logs", auditLogHandlers.ListAuditLogs)
	api.GET("/audit-logs/target/:id", auditLogHandlers.GetTargetHistory)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
