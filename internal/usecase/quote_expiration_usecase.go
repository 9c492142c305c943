package usecase

import (
	"context"
	"errors"
	"fmt"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// IQuoteExpirationUseCase marks submitted quotes past quote_expires_at as
// expired. Running it twice is a no-op the second time.

type IQuoteExpirationUseCase interface {
	CheckExpiredQuotes(ctx context.Context) (int, error)
}

type QuoteExpirationUseCase struct {
	repo interfaces.IQuoteRepository
	settings
}

var _ IQuoteExpirationUseCase = (*QuoteExpirationUseCase)(nil)

func NewQuoteExpirationUseCase(repo interfaces.IQuoteRepository, opts ...Option) *QuoteExpirationUseCase {
	return &QuoteExpirationUseCase{repo: repo, settings: newSettings(opts)}
}

// CheckExpiredQuotes returns how many quotes it expired. A failure listing
// candidates is returned; a failure on a single quote is logged and that
// quote is left out of the count. The write is guarded on the stored status
// still being submitted, so a quote decided after listing is not expired.
func (u *QuoteExpirationUseCase) CheckExpiredQuotes(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "QuoteExpirationUseCase.CheckExpiredQuotes")
	defer span.End()

	now := u.now()
	callCtx, cancel := u.bounded(ctx)
	candidates, err := u.repo.ListExpiredSubmitted(callCtx, now)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("%w: list expired quotes: %w", ErrPersistence, err)
	}

	expired := 0
	for _, q := range candidates {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		if q.Status != entities.QuoteStatusSubmitted || !q.QuoteExpiresAt.Before(now) {
			continue
		}

		patch := entities.QuotePatch{UpdatedAt: now}
		patch.SetStatus(entities.QuoteStatusExpired)
		patch.ExpectStatus(entities.QuoteStatusSubmitted)
		if _, err := updateQuote(ctx, u.repo, u.settings, q.ID, patch); err != nil {
			if errors.Is(err, ErrQuoteNotFound) {
				u.logger.Info("[quote][expiration] quote left submitted before expiry, skipped", zap.String("quote_id", q.ID))
				continue
			}
			u.logger.Warn("[quote][expiration] failed to expire quote", zap.String("quote_id", q.ID), zap.Error(err))
			continue
		}
		expired++
	}

	span.SetAttributes(attribute.Int("quotes.candidates", len(candidates)), attribute.Int("quotes.expired", expired))
	u.metrics.AddExpired(expired)
	u.logger.Info("[quote][expiration] sweep finished", zap.Int("candidates", len(candidates)), zap.Int("expired", expired))
	return expired, nil
}
