package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "cargo_underwriting/docs"
	"cargo_underwriting/internal/adapter/http/routes"
	"cargo_underwriting/internal/bootstrap"
	"cargo_underwriting/internal/config"
	"cargo_underwriting/internal/infrastructure/metrics"
	"cargo_underwriting/internal/infrastructure/telemetry"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Cargo Underwriting API
// @version         1.0
// @description     Cargo insurance quote intake, underwriting decisions and review queue.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, routes.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	svc, err := bootstrap.New(ctx, cfg, logger, metrics.New())
	if err != nil {
		logger.Fatal("Failed to startup the application", zap.Error(err))
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("Failed to release resources", zap.Error(err))
		}
	}()

	if err := routes.Run(ctx, cfg.Port, svc, logger); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
	}
}
