package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/redis/v3"
	"go.uber.org/zap"

	"edunex/internal/ai"
	"edunex/internal/chat"
	"edunex/internal/config"
	"edunex/internal/db"
	"edunex/internal/jobs"
	"edunex/internal/logging"
	"edunex/internal/metrics"
	"edunex/internal/resolver"
	"edunex/internal/server"
	"edunex/internal/usage"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logger := logging.Must(cfg.IsDev())
	defer logger.Sync()

	acfg, err := config.LoadAssistantConfig()
	if err != nil {
		logger.Fatal("failed to load assistant config", zap.Error(err))
	}
	loc, err := acfg.Location()
	if err != nil {
		logger.Fatal("invalid assistant timezone", zap.Error(err))
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("migrations completed successfully")

	if cfg.SeedDevFAQs {
		if err := database.SeedDevFAQs(ctx); err != nil {
			logger.Error("failed to seed FAQs", zap.Error(err))
		}
	}
	if cfg.SeedAdmin != "" && cfg.SeedPassword != "" {
		if err := database.EnsureAdmin(ctx, cfg.SeedAdmin, cfg.SeedPassword); err != nil {
			logger.Error("failed to seed admin", zap.Error(err))
		}
	}

	// Shared storage for sessions, the rate limiter and usage counters.
	var storage fiber.Storage
	if cfg.RedisURL != "" {
		rs := redis.New(redis.Config{URL: cfg.RedisURL})
		defer rs.Close()
		storage = rs
		logger.Info("using redis storage")
	} else {
		ms := memory.New()
		defer ms.Close()
		storage = ms
		logger.Info("using in-memory storage; usage counters reset on restart")
	}

	recorder := metrics.Init(database, logger)
	gateway := ai.New(cfg, acfg, logger, metrics.ObserveProviderCall)
	if len(gateway.Configured()) == 0 {
		logger.Warn("no AI provider configured; only FAQ answers are available")
	}

	tracker := usage.NewTracker(storage, acfg.ProviderLimits(), loc, logger)
	res := resolver.New(database, gateway, resolver.Vocabulary{
		Departments: acfg.Departments(),
		Topics:      acfg.Topics(),
	}, logger)
	chatService := chat.NewService(chat.Config{
		Resolver: res,
		Gateway:  gateway,
		FAQs:     database,
		Tracker:  tracker,
		Recorder: recorder,
		Timeout:  acfg.Timeout(),
		Logger:   logger,
	})

	var prober *jobs.ProviderProber
	if cfg.ProviderProbeInterval > 0 {
		prober = jobs.NewProviderProber(gateway, cfg.ProviderProbeInterval, logger)
		go prober.Start(ctx)
	}

	srv := server.New(cfg, storage, logger)
	if err := srv.RegisterRoutes(ctx, server.Deps{
		DB:      database,
		Chat:    chatService,
		Gateway: gateway,
		Prober:  prober,
	}); err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
