package interfaces

import (
	"context"
	"time"

	"cargo_underwriting/internal/domain/entities"
)

// IQuoteRepository abstracts persistence for Quote (DynamoDB or Postgres).
//
// The underwriting engine must be able to:
//   - read a quote by id (zero-value Quote with empty ID when missing)
//   - write a partial set of lifecycle fields in a single update
//   - list quotes in a status, oldest first, to drain the review queue
//   - list submitted quotes whose expiration is before now
//
// Updates are last-writer-wins: no version token or row lock is taken.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error)
	ListByStatus(ctx context.Context, status entities.QuoteStatus) ([]entities.Quote, error)
	ListExpiredSubmitted(ctx context.Context, now time.Time) ([]entities.Quote, error)
}
