// Package bootstrap builds the quote use cases and their adapters from
// config. Both the API and the scheduler binaries start from here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"cargo_underwriting/internal/adapter/messaging"
	"cargo_underwriting/internal/adapter/persistence/postgres"
	"cargo_underwriting/internal/adapter/persistence/repository"
	"cargo_underwriting/internal/config"
	"cargo_underwriting/internal/domain/underwriting"
	"cargo_underwriting/internal/infrastructure/database"
	"cargo_underwriting/internal/infrastructure/metrics"
	"cargo_underwriting/internal/infrastructure/scheduler"
	"cargo_underwriting/internal/usecase"
	"cargo_underwriting/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type Services struct {
	Quotes     *usecase.QuoteUseCase
	Processing *usecase.QuoteProcessingUseCase
	Reviews    *usecase.QuoteReviewUseCase
	Expiration *usecase.QuoteExpirationUseCase

	// Enqueuer is nil when REDIS_URL is not set.
	Enqueuer interfaces.ITaskEnqueuer

	closers []func() error
}

type store struct {
	quotes interfaces.IQuoteRepository
	audit  interfaces.IAuditLogSink
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger, m *metrics.Metrics) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Services{}

	st, err := s.openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	audit := st.audit
	if len(cfg.AuditKafkaBrokers) > 0 {
		writer := messaging.NewKafkaWriter(cfg.AuditKafkaBrokers, cfg.AuditKafkaTopic)
		s.closers = append(s.closers, writer.Close)
		audit = messaging.NewFanOutAuditSink(st.audit, messaging.NewKafkaAuditPublisher(writer))
		logger.Info("[bootstrap] audit events mirrored to kafka",
			zap.Strings("brokers", cfg.AuditKafkaBrokers),
			zap.String("topic", cfg.AuditKafkaTopic),
		)
	}

	if cfg.RedisURL != "" {
		client, err := scheduler.NewClient(cfg.RedisURL, cfg.AsynqQueue)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("asynq client: %w", err)
		}
		s.closers = append(s.closers, client.Close)
		s.Enqueuer = client
	}

	rules := cfg.Rules()
	opts := []usecase.Option{
		usecase.WithLogger(logger),
		usecase.WithMetrics(m),
		usecase.WithCallTimeout(cfg.StoreCallTimeout),
		usecase.WithReviewDelay(cfg.ReviewBatchDelay),
		usecase.WithQuoteTTL(cfg.QuoteTTL),
	}
	decider := underwriting.NewDecider(rules)

	s.Quotes = usecase.NewQuoteUseCase(st.quotes, opts...)
	s.Processing = usecase.NewQuoteProcessingUseCase(st.quotes, audit, decider, rules, opts...)
	s.Reviews = usecase.NewQuoteReviewUseCase(st.quotes, audit, decider, opts...)
	s.Expiration = usecase.NewQuoteExpirationUseCase(st.quotes, opts...)
	return s, nil
}

func (s *Services) openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return store{}, err
		}
		s.closers = append(s.closers, func() error { pool.Close(); return nil })
		if err := database.RunMigrations(ctx, pool); err != nil {
			_ = s.Close()
			return store{}, err
		}
		logger.Info("[bootstrap] using postgres quote store")
		return store{
			quotes: postgres.NewQuoteRepository(pool),
			audit:  postgres.NewAuditLogRepository(pool),
		}, nil
	case config.StoreDynamoDB, "":
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return store{}, err
		}
		logger.Info("[bootstrap] using dynamodb quote store",
			zap.String("quotes_table", cfg.QuotesTable),
			zap.String("audit_table", cfg.AuditLogsTable),
		)
		return store{
			quotes: repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable),
			audit:  repository.NewAuditLogDynamoRepository(ddb, cfg.AuditLogsTable),
		}, nil
	default:
		return store{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// Close releases connections in reverse order of creation.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
