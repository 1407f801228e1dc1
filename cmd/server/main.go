// Package main is the entry point for the GridPulse HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/events"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/handler"
	"github.com/popeskul/gridpulse/internal/infrastructure/migrate"
	"github.com/popeskul/gridpulse/internal/metrics"
	"github.com/popeskul/gridpulse/internal/middleware"
	"github.com/popeskul/gridpulse/internal/repository"
	"github.com/popeskul/gridpulse/internal/service"
)

const (
	sendPath    = "/api/whatsapp/send"
	webhookPath = "/api/whatsapp/webhook"
	healthPath  = "/health"
	metricsPath = "/metrics"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	metrics.Init()

	if cfg.Database.AutoMigrate {
		runner := migrate.NewRunner(&migrate.Config{
			DatabaseURL:    cfg.Database.GetURL(),
			MigrationsPath: cfg.Database.MigrationsPath,
		}, logger)
		if err := runner.Run(); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	gw, err := gateway.NewFromConfig(&cfg.WhatsApp, logger)
	if err != nil {
		logger.Fatal("Failed to create WhatsApp gateway", zap.Error(err))
	}

	publisher := events.NewNopPublisher()
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.Info("Publishing domain events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}()

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, redisClient, gw, publisher, logger)

	var verifier *handler.WebhookVerifier
	if cfg.WhatsApp.ValidateSignature {
		verifier = &handler.WebhookVerifier{
			Validator: gateway.NewSignatureValidator(cfg.WhatsApp.AuthToken),
			URL:       cfg.WhatsApp.WebhookURL,
		}
	}

	router := setupRouter(handler.NewHandler(svc, verifier, logger))

	middlewareConfig := &middleware.Config{
		Logger:               logger,
		QuietPaths:           []string{healthPath, metricsPath},
		RateLimit:            rate.Limit(cfg.Middleware.RateLimit),
		RateLimitBurst:       cfg.Middleware.RateLimitBurst,
		RateLimitExemptPaths: []string{webhookPath},
		RequestTimeout:       time.Duration(cfg.Middleware.RequestTimeout) * time.Second,
		TimeoutExemptPaths:   []string{sendPath},
	}
	if cfg.Middleware.EnableCORS {
		middlewareConfig.CORS = middleware.DefaultCORSConfig(cfg.Middleware.AllowedOrigins...)
	}

	chain := middleware.NewChain(middlewareConfig)
	defer chain.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      chain.Then(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("address", srv.Addr), zap.String("provider", cfg.WhatsApp.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
