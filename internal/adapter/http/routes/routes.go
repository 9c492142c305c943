package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "cargo_underwriting/docs"
	"cargo_underwriting/internal/adapter/http/handlers"
	"cargo_underwriting/internal/bootstrap"
	"cargo_underwriting/internal/infrastructure/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	ServiceName     = "cargo-underwriting-api"
	shutdownTimeout = 10 * time.Second
)

// NewRouter registers every public route on a fresh engine.
func NewRouter(svc *bootstrap.Services, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	setMiddlewares(router, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	quoteHandler := handlers.NewQuoteHandler(svc.Quotes, svc.Processing, svc.Enqueuer)
	reviewHandler := handlers.NewReviewHandler(svc.Reviews, svc.Expiration)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler, reviewHandler)
	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, port string, svc *bootstrap.Services, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[http] listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("[http] shutting down")
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(telemetry.TracingMiddleware(ServiceName, logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
