package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pm-ajay/scheme-portal/portal-backend/internal/agencies"
	"pm-ajay/scheme-portal/portal-backend/internal/auth"
	"pm-ajay/scheme-portal/portal-backend/internal/config"
	"pm-ajay/scheme-portal/portal-backend/internal/dashboard"
	"pm-ajay/scheme-portal/portal-backend/internal/database"
	"pm-ajay/scheme-portal/portal-backend/internal/forum"
	"pm-ajay/scheme-portal/portal-backend/internal/projects"
	"pm-ajay/scheme-portal/portal-backend/internal/proposals"
	"pm-ajay/scheme-portal/portal-backend/internal/reports"
	"pm-ajay/scheme-portal/portal-backend/internal/uploads"
	"pm-ajay/scheme-portal/portal-backend/internal/village"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database and load demo fixtures
	logger.Info("Connecting to database", zap.String("backend", cfg.Database.Backend()))
	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.Seed(db); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	store, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("Failed to prepare upload storage", zap.Error(err))
	}

	issuer := auth.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.TokenExpiry)

	// Wire modules
	userRepo := auth.NewUserRepository(db)
	authService := auth.NewService(userRepo, issuer, logger)
	authHandler := auth.NewHandler(authService, issuer, logger)

	agencyRepo := agencies.NewRepository(db)
	agencyHandler := agencies.NewHandler(agencyRepo, issuer, logger)

	projectRepo := projects.NewRepository(db)
	projectService := projects.NewService(projectRepo, logger)
	projectHandler := projects.NewHandler(projectService, store, issuer, logger)

	proposalRepo := proposals.NewRepository(db)
	proposalService := proposals.NewService(proposalRepo, agencyRepo, logger)
	proposalHandler := proposals.NewHandler(proposalService, issuer, logger)

	villageRepo := village.NewRepository(db)
	villageHandler := village.NewHandler(villageRepo, issuer, logger)

	forumRepo := forum.NewRepository(db)
	forumHandler := forum.NewHandler(forumRepo, issuer, logger)

	dashboardRepo := dashboard.NewRepository(db)
	aggregator := dashboard.NewAggregator(dashboardRepo, 5*time.Minute, logger)
	defer aggregator.Stop()
	dashboardHandler := dashboard.NewHandler(aggregator, projectRepo, agencyRepo, issuer, logger)

	reportService := reports.NewService(projectRepo)
	reportHandler := reports.NewHandler(reportService, issuer, logger)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register routes
	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		agencyHandler.RegisterRoutes(api)
		projectHandler.RegisterRoutes(api)
		proposalHandler.RegisterRoutes(api)
		villageHandler.RegisterRoutes(api)
		forumHandler.RegisterRoutes(api)
		dashboardHandler.RegisterRoutes(api)
		reportHandler.RegisterRoutes(api)
	}

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":     "PM-AJAY Portal API is running",
			"timestamp":   time.Now(),
			"database":    cfg.Database.Backend(),
			"environment": cfg.Server.Environment,
		})
	})

	// Serve progress attachments
	router.Static("/uploads", cfg.Uploads.Dir)

	// Keep the public summary warm
	scheduler := cron.New()
	scheduler.AddFunc("@every 5m", func() {
		aggregator.RefreshPublicSummary(context.Background())
	})
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Backend()))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", zap.Error(err))
	}

	logger.Info("Server exiting")
}
