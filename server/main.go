package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketly/api/routes"
	"ticketly/docs"
	"ticketly/internal/notifications"
	"ticketly/internal/sessions"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/shared/middleware"
	"ticketly/internal/venues"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"
	"ticketly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title						Ticketly API
// @version					1.0
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		appLogger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	registry, err := venues.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		appLogger.Error("Failed to load venue registry", slog.Any("error", err), slog.String("path", cfg.Registry.Path))
		os.Exit(1)
	}

	sessionOpts, err := buildSessionOptions(cfg)
	if err != nil {
		appLogger.Error("Invalid scheduler configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Event publisher, Kafka is opt-in
	var publisher sessions.Publisher = notifications.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producerCfg := notifications.DefaultKafkaProducerConfig()
		producerCfg.Brokers = cfg.Kafka.Brokers
		producerCfg.SessionsTopic = cfg.Kafka.SessionsTopic

		kafkaPublisher, err := notifications.NewKafkaSessionPublisher(producerCfg)
		if err != nil {
			appLogger.Error("Failed to create Kafka producer, session events will not be published", slog.Any("error", err))
		} else {
			publisher = kafkaPublisher
			defer kafkaPublisher.Close()
			appLogger.Info("Kafka session publisher ready", slog.String("topic", producerCfg.SessionsTopic))
		}
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:            cfg.RateLimit.Enabled,
			WindowDuration:     cfg.RateLimit.WindowDuration,
			DefaultRequests:    cfg.RateLimit.DefaultRequests,
			PublicRequests:     cfg.RateLimit.PublicRequests,
			AdminRequests:      cfg.RateLimit.AdminRequests,
			SchedulingRequests: cfg.RateLimit.SchedulingRequests,
			HealthRequests:     cfg.RateLimit.HealthRequests,
			WhitelistedIPs:     cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			slog.Bool("redis_backed", db.Redis != nil),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	appRouter := routes.NewRouter(cfg, db, routes.Dependencies{
		Cache:     cache.NewService(db.GetRedisClient()),
		Registry:  registry,
		Publisher: publisher,
		Sessions:  sessionOpts,
	})
	engine := setupEngine(cfg, appRouter, rateLimiter)

	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()
	if cfg.Scheduler.Enabled {
		job := appRouter.CoverageJob()
		job.Start(jobCtx)
		defer func() {
			jobCancel()
			job.Stop()
		}()
		appLogger.Info("Session coverage job started", slog.Duration("interval", cfg.Scheduler.Interval))
	}

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.Bool("redis", db.Redis != nil),
			slog.Bool("kafka", cfg.Kafka.Enabled),
			slog.Int("venue_templates", len(registry.Templates())),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// buildSessionOptions resolves slots, window and timezone for the scheduler
func buildSessionOptions(cfg *config.Config) (sessions.Options, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return sessions.Options{}, err
	}

	slots := sessions.DefaultSlots
	if len(cfg.Scheduler.Slots) > 0 {
		slots, err = sessions.ParseSlots(cfg.Scheduler.Slots)
		if err != nil {
			return sessions.Options{}, err
		}
	}

	return sessions.Options{
		Plan: sessions.PlanOptions{
			WindowDays:  cfg.Scheduler.WindowDays,
			SlotsPerDay: cfg.Scheduler.SlotsPerDay,
			Location:    loc,
		},
		Slots:   slots,
		LockTTL: cfg.Scheduler.LockTTL,
		Workers: cfg.Scheduler.Workers,
	}, nil
}

func setupEngine(cfg *config.Config, appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestLogger(), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	docs.SwaggerInfo.BasePath = cfg.GetAPIBasePath()
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	appRouter.SetupRoutes(engine)

	return engine
}
