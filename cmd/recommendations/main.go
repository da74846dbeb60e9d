package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/parkpilot/parkpilot/internal/facility"
	"github.com/parkpilot/parkpilot/internal/occupancy"
	"github.com/parkpilot/parkpilot/internal/prediction"
	"github.com/parkpilot/parkpilot/internal/recommend"
	"github.com/parkpilot/parkpilot/pkg/cache"
	"github.com/parkpilot/parkpilot/pkg/common"
	"github.com/parkpilot/parkpilot/pkg/config"
	"github.com/parkpilot/parkpilot/pkg/database"
	"github.com/parkpilot/parkpilot/pkg/errors"
	"github.com/parkpilot/parkpilot/pkg/logger"
	"github.com/parkpilot/parkpilot/pkg/middleware"
	redisClient "github.com/parkpilot/parkpilot/pkg/redis"
	"github.com/parkpilot/parkpilot/pkg/resilience"
)

const (
	serviceName = "recommendations-service"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting recommendations service",
		zap.String("service", serviceName),
		zap.String("version", version),
	)

	// Sentry error tracking
	sentryConfig := errors.DefaultSentryConfig()
	sentryConfig.ServerName = serviceName
	sentryConfig.Release = version
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	// PostgreSQL
	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL")

	if cfg.Database.Migrate {
		if err := database.RunMigrations(&cfg.Database, "migrations"); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis
	redis, err := redisClient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()
	logger.Info("Connected to Redis")

	cacheManager := cache.NewManager(redis)

	// Domain services
	facilityRepo := facility.NewRepository(pool)
	facilityService := facility.NewService(facilityRepo, cacheManager)
	occupancyService := occupancy.NewService(facilityRepo)

	oracle := buildOracle(cfg)

	engine := recommend.NewService(facilityService, oracle, recommend.Config{
		DefaultRadiusKm:             cfg.Recommendation.DefaultRadiusKm,
		DefaultArrivalOffsetMinutes: cfg.Recommendation.DefaultArrivalOffsetMinutes,
		MaxResults:                  cfg.Recommendation.MaxResults,
		SlotStatusConcurrency:       cfg.Recommendation.SlotStatusConcurrency,
	})

	facilityHandler := facility.NewHandler(facilityService, cfg.Recommendation.DefaultRadiusKm)
	occupancyHandler := occupancy.NewHandler(occupancyService)
	recommendHandler := recommend.NewHandler(engine)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(common.NoRouteHandler())
	router.NoMethod(common.NoMethodHandler())
	router.Use(middleware.RecoveryWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(30 * time.Second))
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.Metrics(serviceName))
	router.Use(middleware.ErrorHandler())

	// Health and diagnostics
	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))

	healthChecks := map[string]func() error{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redis.Ping(ctx).Err()
		},
	}
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, healthChecks))

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": serviceName, "version": version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	facilityHandler.RegisterRoutes(api)
	occupancyHandler.RegisterRoutes(api)
	recommendHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// buildOracle selects the prediction oracle implementation: a real HTTP
// client when a service URL is configured, the neutral stub otherwise.
func buildOracle(cfg *config.Config) prediction.Oracle {
	if cfg.Oracle.BaseURL == "" {
		logger.Warn("ORACLE_URL not set, all predictions will use the neutral fallback")
		return prediction.NeutralOracle{}
	}

	oracle := prediction.NewHTTPOracle(
		cfg.Oracle.BaseURL,
		time.Duration(cfg.Oracle.HealthTimeoutSeconds)*time.Second,
		time.Duration(cfg.Oracle.PredictTimeoutSeconds)*time.Second,
	)

	if cfg.Resilience.CircuitBreaker.Enabled {
		cb := cfg.Resilience.CircuitBreaker
		breaker := resilience.NewCircuitBreaker(resilience.BuildSettings(
			fmt.Sprintf("%s-oracle", serviceName),
			cb.IntervalSeconds, cb.TimeoutSeconds, cb.FailureThreshold, cb.SuccessThreshold,
		))
		oracle.SetCircuitBreaker(breaker)
		logger.Info("Circuit breaker enabled for prediction oracle")
	}

	return oracle
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.Server.CORSOrigins != "" {
		origins := strings.Split(cfg.Server.CORSOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsCfg.AllowCredentials = true
	return corsCfg
}
