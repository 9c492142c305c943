package usecase

import (
	"context"
	"time"

	"cargo_underwriting/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const (
	DefaultCallTimeout = 5 * time.Second
	DefaultReviewDelay = 100 * time.Millisecond
	DefaultQuoteTTL    = 30 * 24 * time.Hour
)

var tracer = otel.Tracer("cargo_underwriting/internal/usecase")

// Option tunes the runtime collaborators shared by the quote use cases.
type Option func(*settings)

type settings struct {
	clock       clockwork.Clock
	callTimeout time.Duration
	reviewDelay time.Duration
	quoteTTL    time.Duration
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func newSettings(opts []Option) settings {
	s := settings{
		clock:       clockwork.NewRealClock(),
		callTimeout: DefaultCallTimeout,
		reviewDelay: DefaultReviewDelay,
		quoteTTL:    DefaultQuoteTTL,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func WithClock(c clockwork.Clock) Option {
	return func(s *settings) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithCallTimeout bounds every store and audit call. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(s *settings) { s.callTimeout = d }
}

// WithReviewDelay sets the pause between quotes while draining the review queue.
func WithReviewDelay(d time.Duration) Option {
	return func(s *settings) { s.reviewDelay = d }
}

func WithQuoteTTL(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.quoteTTL = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

func (s settings) now() time.Time {
	return s.clock.Now().UTC()
}

func (s settings) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.callTimeout)
}
