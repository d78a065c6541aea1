// @title Moodle Bridge API
// @version 1.0
// @description Links mobile app users to their Moodle accounts and serves their courses and certificates.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "moodle-bridge/cmd/api/docs"
	"moodle-bridge/internal/adapter"
	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/cache"
	"moodle-bridge/internal/config"
	"moodle-bridge/internal/database"
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/handler"
	"moodle-bridge/internal/logger"
	"moodle-bridge/internal/metrics"
	"moodle-bridge/internal/middleware"
	"moodle-bridge/internal/repository"
	"moodle-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Connect to database
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	linkedAccountRepository := repository.NewSQLXLinkedAccountRepository(db)

	// Redis is optional; without it the link guard is disabled.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, link attempt guard disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis")
		}
	}

	// Moodle client
	moodleClient, err := moodle.NewClient(cfg.LMS, moodle.WithMetrics(appMetrics))
	if err != nil {
		appLogger.Fatal("Failed to create Moodle client", zap.Error(err))
	}
	appLogger.Info("Moodle client initialized",
		zap.String("base_url", cfg.LMS.BaseURL),
		zap.String("service", cfg.LMS.ServiceShortname))

	// Initialize services
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	linkGuard := service.NewLinkGuard(cacheAdapter, cfg.LinkGuard)
	accountLinkService := service.NewAccountLinkService(moodleClient, linkedAccountRepository, linkGuard, appMetrics)
	courseService := service.NewCourseService(moodleClient, linkedAccountRepository, cfg.LMS)
	certificateService := service.NewCertificateService(moodleClient, linkedAccountRepository, cfg.LMS)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.Metrics(appMetrics))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handler.SetupRoutes(app, authService, handler.Handlers{
		MoodleAuth:  handler.NewMoodleAuthHandler(accountLinkService),
		Course:      handler.NewCourseHandler(courseService),
		Certificate: handler.NewCertificateHandler(certificateService),
		Health:      handler.NewHealthHandler(db, cacheAdapter),
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
