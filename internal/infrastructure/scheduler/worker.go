package scheduler

import (
	"context"
	"errors"
	"fmt"

	"cargo_underwriting/internal/usecase"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// Handlers are the use cases the worker dispatches to.
type Handlers struct {
	Processing usecase.IQuoteProcessingUseCase
	Reviews    usecase.IQuoteReviewUseCase
	Expiration usecase.IQuoteExpirationUseCase
	Logger     *zap.Logger
}

func NewWorker(redisURL, queue string, concurrency int, h Handlers) (*Worker, error) {
	opt, err := RedisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}
	if queue == "" {
		queue = DefaultQueue
	}
	if concurrency < 1 {
		concurrency = 5
	}
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
		Logger:      h.Logger.Sugar(),
	})
	return &Worker{server: server, mux: NewServeMux(h), logger: h.Logger}, nil
}

// NewServeMux routes every quote task type to its handler.
func NewServeMux(h Handlers) *asynq.ServeMux {
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskProcessQuote, h.handleProcessQuote)
	mux.HandleFunc(TaskProcessReviews, h.handleProcessReviews)
	mux.HandleFunc(TaskExpireQuotes, h.handleExpireQuotes)
	return mux
}

func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()
	if err := w.server.Run(w.mux); err != nil {
		w.logger.Error("[scheduler] worker stopped", zap.Error(err))
		return err
	}
	return nil
}

func (h Handlers) handleProcessQuote(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProcessQuotePayload(task)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	res, err := h.Processing.ProcessQuote(ctx, payload.QuoteID, payload.Immediate)
	if err != nil {
		if errors.Is(err, usecase.ErrQuoteNotFound) || errors.Is(err, usecase.ErrInvalidQuoteID) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}
	h.Logger.Info("[scheduler] quote processed",
		zap.String("quote_id", payload.QuoteID),
		zap.String("decision", string(res.Decision)),
		zap.Int("advisories", len(res.Advisories)),
	)
	return nil
}

func (h Handlers) handleProcessReviews(ctx context.Context, _ *asynq.Task) error {
	res, err := h.Reviews.ProcessPendingReviews(ctx)
	if err != nil {
		return err
	}
	h.Logger.Info("[scheduler] review queue drained",
		zap.Int("processed", res.Processed),
		zap.Int("failed", res.Failed),
	)
	return nil
}

func (h Handlers) handleExpireQuotes(ctx context.Context, _ *asynq.Task) error {
	n, err := h.Expiration.CheckExpiredQuotes(ctx)
	if err != nil {
		return err
	}
	h.Logger.Info("[scheduler] expiration sweep finished", zap.Int("expired", n))
	return nil
}
