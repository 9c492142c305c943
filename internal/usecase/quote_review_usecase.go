package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	reviewSourceAutomatic = "automatic"
	reviewSourceManual    = "manual"

	manualApprovalReason = "approved by underwriter"
)

// ManualReviewCommand is an underwriter's override. Only approved and
// rejected are accepted; a rejection must carry notes, which become the
// rejection reason.
type ManualReviewCommand struct {
	Decision   entities.ReviewOutcome
	Notes      string
	Conditions []string
	Reviewer   string
}

type ReviewItemResult struct {
	QuoteID  string                   `json:"quote_id"`
	Status   entities.QuoteStatus     `json:"status,omitempty"`
	Decision *entities.ReviewDecision `json:"decision,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

type ReviewBatchResult struct {
	Processed int                `json:"processed"`
	Failed    int                `json:"failed"`
	Results   []ReviewItemResult `json:"results"`
}

// IQuoteReviewUseCase applies review decisions to quotes.
//
//   - ApplyDecision writes an already computed decision.
//   - ProcessPendingReviews drains the under_review queue oldest first and
//     never aborts on a single quote's failure.
//   - ManualReview is the underwriter override.

type IQuoteReviewUseCase interface {
	ApplyDecision(ctx context.Context, q entities.Quote, d entities.ReviewDecision) (entities.Quote, error)
	ProcessPendingReviews(ctx context.Context) (ReviewBatchResult, error)
	ManualReview(ctx context.Context, quoteID string, cmd ManualReviewCommand) (entities.Quote, error)
}

type QuoteReviewUseCase struct {
	repo    interfaces.IQuoteRepository
	audit   interfaces.IAuditLogSink
	decider interfaces.IReviewDecider
	settings
}

var _ IQuoteReviewUseCase = (*QuoteReviewUseCase)(nil)

func NewQuoteReviewUseCase(repo interfaces.IQuoteRepository, audit interfaces.IAuditLogSink, decider interfaces.IReviewDecider, opts ...Option) *QuoteReviewUseCase {
	return &QuoteReviewUseCase{repo: repo, audit: audit, decider: decider, settings: newSettings(opts)}
}

func (u *QuoteReviewUseCase) ApplyDecision(ctx context.Context, q entities.Quote, d entities.ReviewDecision) (entities.Quote, error) {
	return u.apply(ctx, q, d, nil, reviewSourceAutomatic)
}

func (u *QuoteReviewUseCase) apply(ctx context.Context, q entities.Quote, d entities.ReviewDecision, conditions []string, source string) (entities.Quote, error) {
	if q.Status.IsTerminal() {
		return entities.Quote{}, ErrQuoteTerminal
	}

	now := u.now()
	patch := entities.QuotePatch{UpdatedAt: now}
	status, err := applyReviewToPatch(&patch, q, d, now)
	if err != nil {
		return entities.Quote{}, err
	}
	if status == entities.QuoteStatusApproved && len(conditions) > 0 {
		patch.ApprovalConditions = conditions
	}

	updated, err := updateQuote(ctx, u.repo, u.settings, q.ID, patch)
	if err != nil {
		u.logger.Error("[quote][review] update failed", zap.String("quote_id", q.ID), zap.Error(err))
		return entities.Quote{}, err
	}

	u.metrics.IncrementReviewDecision(string(d.Decision), source)
	u.logger.Info("[quote][review] decision applied",
		zap.String("quote_id", q.ID),
		zap.String("source", source),
		zap.String("decision", string(d.Decision)),
		zap.String("previous_status", string(q.Status)),
		zap.String("new_status", string(updated.Status)),
	)

	_ = appendAudit(ctx, u.audit, u.settings, q.ID, entities.AuditDetails{
		PreviousStatus:    q.Status,
		NewStatus:         updated.Status,
		RiskScore:         q.RiskScore,
		ImmediateDecision: false,
		Source:            source + "_review",
		ReviewDecision:    &d,
	})
	return updated, nil
}

func (u *QuoteReviewUseCase) ProcessPendingReviews(ctx context.Context) (ReviewBatchResult, error) {
	ctx, span := tracer.Start(ctx, "QuoteReviewUseCase.ProcessPendingReviews")
	defer span.End()

	callCtx, cancel := u.bounded(ctx)
	pending, err := u.repo.ListByStatus(callCtx, entities.QuoteStatusUnderReview)
	cancel()
	if err != nil {
		return ReviewBatchResult{}, fmt.Errorf("%w: list review queue: %w", ErrPersistence, err)
	}
	slices.SortStableFunc(pending, func(a, b entities.Quote) int {
		return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
	})
	span.SetAttributes(attribute.Int("review.pending", len(pending)))
	u.logger.Info("[quote][review] draining review queue", zap.Int("pending", len(pending)))

	result := ReviewBatchResult{Results: make([]ReviewItemResult, 0, len(pending))}
	for i, q := range pending {
		if i > 0 && u.reviewDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-u.clock.After(u.reviewDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		item := u.reviewOne(ctx, q)
		if item.Error != "" {
			result.Failed++
		} else {
			result.Processed++
		}
		result.Results = append(result.Results, item)
	}

	u.logger.Info("[quote][review] review queue drained",
		zap.Int("processed", result.Processed),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func (u *QuoteReviewUseCase) reviewOne(ctx context.Context, q entities.Quote) ReviewItemResult {
	item := ReviewItemResult{QuoteID: q.ID}
	if u.decider == nil {
		item.Error = "review decider not configured"
		return item
	}

	d, err := u.decider.Decide(q)
	if err != nil {
		u.logger.Warn("[quote][review] decider failed", zap.String("quote_id", q.ID), zap.Error(err))
		item.Error = err.Error()
		return item
	}
	item.Decision = &d

	updated, err := u.ApplyDecision(ctx, q, d)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.Status = updated.Status
	return item
}

func (u *QuoteReviewUseCase) ManualReview(ctx context.Context, quoteID string, cmd ManualReviewCommand) (entities.Quote, error) {
	notes := strings.TrimSpace(cmd.Notes)
	switch cmd.Decision {
	case entities.ReviewApproved:
	case entities.ReviewRejected:
		if notes == "" {
			return entities.Quote{}, fmt.Errorf("%w: rejection requires notes", ErrInvalidReviewDecision)
		}
	default:
		return entities.Quote{}, fmt.Errorf("%w: manual review accepts approved or rejected, got %q", ErrInvalidReviewDecision, cmd.Decision)
	}

	ctx, span := tracer.Start(ctx, "QuoteReviewUseCase.ManualReview")
	defer span.End()

	q, err := loadQuote(ctx, u.repo, u.settings, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}

	reason := notes
	if cmd.Decision == entities.ReviewApproved && reason == "" {
		reason = manualApprovalReason
	}
	underwriterNotes := notes
	if reviewer := strings.TrimSpace(cmd.Reviewer); reviewer != "" {
		underwriterNotes = strings.TrimSpace(fmt.Sprintf("[%s] %s", reviewer, notes))
	}

	d := entities.ReviewDecision{
		Decision:         cmd.Decision,
		Reason:           reason,
		UnderwriterNotes: underwriterNotes,
		Priority:         entities.PriorityMedium,
		Resolution:       entities.ResolutionImmediate,
	}
	return u.apply(ctx, q, d, cleanConditions(cmd.Conditions), reviewSourceManual)
}

func cleanConditions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
