package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cargo_underwriting/internal/bootstrap"
	"cargo_underwriting/internal/config"
	"cargo_underwriting/internal/infrastructure/metrics"
	"cargo_underwriting/internal/infrastructure/scheduler"
	"cargo_underwriting/internal/infrastructure/telemetry"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

const serviceName = "cargo-underwriting-scheduler"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URL is required for the scheduler")
	}

	logger, err := telemetry.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting scheduler", zap.String("env", cfg.Env), zap.String("queue", cfg.AsynqQueue))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	svc, err := bootstrap.New(ctx, cfg, logger, metrics.New())
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer func() { _ = svc.Close() }()

	sched, err := scheduler.NewScheduler(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to initialize asynq scheduler", zap.Error(err))
	}
	ids, err := scheduler.RegisterPeriodicTasks(sched, scheduler.PeriodicConfig{
		Queue:               cfg.AsynqQueue,
		ExpirationSweepCron: cfg.ExpirationSweepCron,
		ReviewDrainCron:     cfg.ReviewDrainCron,
	})
	if err != nil {
		logger.Fatal("Failed to register periodic tasks", zap.Error(err))
	}
	logger.Info("periodic tasks registered", zap.Strings("entries", ids))

	if err := sched.Start(); err != nil {
		logger.Fatal("Failed to start asynq scheduler", zap.Error(err))
	}
	defer sched.Shutdown()

	worker, err := scheduler.NewWorker(cfg.RedisURL, cfg.AsynqQueue, cfg.AsynqConcurrency, scheduler.Handlers{
		Processing: svc.Processing,
		Reviews:    svc.Reviews,
		Expiration: svc.Expiration,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Failed to initialize scheduler worker", zap.Error(err))
	}
	if err := worker.Run(ctx); err != nil {
		logger.Error("Scheduler worker stopped", zap.Error(err))
	}
}
