package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/domain/underwriting"
	"cargo_underwriting/internal/usecase/interfaces"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	messageApproved    = "Your quote has been approved. You can now select a coverage option and proceed to payment."
	messageUnderReview = "Your quote requires manual review by an underwriter. You will be notified within 24-48 hours."
	messageRejected    = "Your quote could not be approved: %s"
	messageNeedsInfo   = "Additional information is required to complete underwriting: %s"
	messageDefault     = "Your quote has been processed with status %s."
)

// AdvisoryKind names a failure that was absorbed instead of failing the call.
type AdvisoryKind string

const (
	AdvisoryAuditLog AdvisoryKind = "audit_log"
	AdvisoryDecider  AdvisoryKind = "decider"
)

type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	Message string       `json:"message"`
}

// ProcessResult is the outcome of ProcessQuote. A rejected decision is a
// normal result, not an error. Advisories list the failures that were
// absorbed (audit append, immediate review) and never change Decision.
type ProcessResult struct {
	Quote             entities.Quote
	Validation        underwriting.Verdict
	ImmediateDecision bool
	Decision          entities.QuoteStatus
	ReviewDecision    *entities.ReviewDecision
	RequiresDocuments bool
	Message           string
	AutoApproved      bool
	Advisories        []Advisory
}

// IQuoteProcessingUseCase runs a quote through validation, scoring and, when
// the quote lands in review, optionally the automatic review matrix.
//
// Only ErrInvalidQuoteID, ErrQuoteNotFound and ErrPersistence are returned
// as errors.

type IQuoteProcessingUseCase interface {
	ProcessQuote(ctx context.Context, quoteID string, immediateDecision bool) (ProcessResult, error)
}

type QuoteProcessingUseCase struct {
	repo      interfaces.IQuoteRepository
	audit     interfaces.IAuditLogSink
	decider   interfaces.IReviewDecider
	validator *underwriting.Validator
	scorer    *underwriting.Scorer
	rules     underwriting.Rules
	rejection map[string]string
	settings
}

var _ IQuoteProcessingUseCase = (*QuoteProcessingUseCase)(nil)

func NewQuoteProcessingUseCase(
	repo interfaces.IQuoteRepository,
	audit interfaces.IAuditLogSink,
	decider interfaces.IReviewDecider,
	rules underwriting.Rules,
	opts ...Option,
) *QuoteProcessingUseCase {
	return &QuoteProcessingUseCase{
		repo:      repo,
		audit:     audit,
		decider:   decider,
		validator: underwriting.NewValidator(rules),
		scorer:    underwriting.NewScorer(rules),
		rules:     rules,
		rejection: rejectionMessages(rules),
		settings:  newSettings(opts),
	}
}

func (u *QuoteProcessingUseCase) ProcessQuote(ctx context.Context, quoteID string, immediateDecision bool) (ProcessResult, error) {
	ctx, span := tracer.Start(ctx, "QuoteProcessingUseCase.ProcessQuote")
	defer span.End()
	started := u.clock.Now()

	q, err := loadQuote(ctx, u.repo, u.settings, quoteID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ProcessResult{}, err
	}
	span.SetAttributes(attribute.String("quote.id", q.ID), attribute.Bool("quote.immediate", immediateDecision))

	now := u.now()
	verdict := u.validator.Validate(q, now)
	score := u.scorer.Score(q)
	log := u.logger.With(zap.String("quote_id", q.ID))

	if q.Status != entities.QuoteStatusSubmitted {
		log.Info("[quote][process] quote already decided, nothing written", zap.String("status", string(q.Status)))
		return u.currentResult(q, verdict), nil
	}

	var res ProcessResult
	if !verdict.Valid || verdict.Status == entities.QuoteStatusRejected {
		res, err = u.reject(ctx, q, verdict, score, now)
	} else {
		res, err = u.route(ctx, q, verdict, score, immediateDecision, now)
	}
	if err != nil {
		log.Error("[quote][process] update failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ProcessResult{}, err
	}

	span.SetAttributes(
		attribute.String("quote.decision", string(res.Decision)),
		attribute.Int("quote.risk_score", score),
	)
	log.Info("[quote][process] processed",
		zap.String("previous_status", string(q.Status)),
		zap.String("decision", string(res.Decision)),
		zap.Int("risk_score", score),
		zap.Bool("immediate_decision", res.ImmediateDecision),
		zap.Int("advisories", len(res.Advisories)),
	)
	u.metrics.ObserveProcessed(string(res.Decision), res.ImmediateDecision, u.clock.Since(started))
	return res, nil
}

// reject is the only early-return path: status, reason and score are
// written together and no review is attempted.
func (u *QuoteProcessingUseCase) reject(ctx context.Context, q entities.Quote, verdict underwriting.Verdict, score int, now time.Time) (ProcessResult, error) {
	reason := u.rejectionText(verdict.Reasons)
	patch := entities.QuotePatch{RiskScore: &score, RejectionReason: &reason, UpdatedAt: now}
	patch.SetStatus(entities.QuoteStatusRejected)

	updated, err := updateQuote(ctx, u.repo, u.settings, q.ID, patch)
	if err != nil {
		return ProcessResult{}, err
	}

	res := ProcessResult{
		Quote:             updated,
		Validation:        verdict,
		ImmediateDecision: true,
		Decision:          entities.QuoteStatusRejected,
		Message:           fmt.Sprintf(messageRejected, reason),
	}
	res.Advisories = u.auditTransition(ctx, q, updated, verdict, score, true, nil)
	return res, nil
}

func (u *QuoteProcessingUseCase) route(ctx context.Context, q entities.Quote, verdict underwriting.Verdict, score int, immediate bool, now time.Time) (ProcessResult, error) {
	patch := entities.QuotePatch{RiskScore: &score, UpdatedAt: now}
	res := ProcessResult{Validation: verdict}

	switch {
	case verdict.Status == entities.QuoteStatusApproved && score <= u.rules.DirectApprovalMaxScore:
		approvePatch(&patch, q, now)
		res.ImmediateDecision, res.AutoApproved = true, true

	case verdict.Status == entities.QuoteStatusUnderReview || score > u.rules.DirectApprovalMaxScore:
		patch.SetStatus(entities.QuoteStatusUnderReview)
		if q.ReviewQueuedAt == nil {
			patch.ReviewQueuedAt = &now
		}
		if immediate {
			scored := q
			scored.RiskScore = &score
			if d, err := u.decide(scored); err != nil {
				u.logger.Warn("[quote][process] immediate review failed, left under review",
					zap.String("quote_id", q.ID), zap.Error(err))
				u.metrics.IncrementAdvisory(string(AdvisoryDecider))
				res.Advisories = append(res.Advisories, Advisory{Kind: AdvisoryDecider, Message: err.Error()})
			} else if status, err := applyReviewToPatch(&patch, q, d, now); err != nil {
				res.Advisories = append(res.Advisories, Advisory{Kind: AdvisoryDecider, Message: err.Error()})
			} else {
				res.ReviewDecision = &d
				res.ImmediateDecision = true
				res.AutoApproved = status == entities.QuoteStatusApproved
			}
		}

	default:
		// Unreachable with integer scores; kept as the approval fallback.
		approvePatch(&patch, q, now)
		res.ImmediateDecision, res.AutoApproved = true, true
	}

	updated, err := updateQuote(ctx, u.repo, u.settings, q.ID, patch)
	if err != nil {
		return ProcessResult{}, err
	}

	res.Quote = updated
	res.Decision = *patch.Status
	res.RequiresDocuments = res.Decision == entities.QuoteStatusNeedsInfo
	res.Message = u.message(res.Decision, updated)
	res.Advisories = append(res.Advisories, u.auditTransition(ctx, q, updated, verdict, score, res.ImmediateDecision, res.ReviewDecision)...)
	return res, nil
}

func (u *QuoteProcessingUseCase) decide(q entities.Quote) (d entities.ReviewDecision, err error) {
	if u.decider == nil {
		return entities.ReviewDecision{}, fmt.Errorf("review decider not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("review decider panicked: %v", r)
		}
	}()
	return u.decider.Decide(q)
}

// currentResult re-reports a quote that left submitted without writing.
// Quotes are scored once; only submitted quotes go through the pipeline.
func (u *QuoteProcessingUseCase) currentResult(q entities.Quote, verdict underwriting.Verdict) ProcessResult {
	msg := u.message(q.Status, q)
	if q.Status == entities.QuoteStatusRejected {
		reason := q.RejectionReason
		if reason == "" && len(verdict.Reasons) > 0 {
			reason = u.rejectionText(verdict.Reasons)
		}
		msg = fmt.Sprintf(messageRejected, reason)
	}
	return ProcessResult{
		Quote:             q,
		Validation:        verdict,
		ImmediateDecision: q.Status != entities.QuoteStatusUnderReview,
		Decision:          q.Status,
		RequiresDocuments: q.Status == entities.QuoteStatusNeedsInfo,
		Message:           msg,
	}
}

func (u *QuoteProcessingUseCase) auditTransition(ctx context.Context, before, after entities.Quote, verdict underwriting.Verdict, score int, immediate bool, d *entities.ReviewDecision) []Advisory {
	err := appendAudit(ctx, u.audit, u.settings, before.ID, entities.AuditDetails{
		PreviousStatus:    before.Status,
		NewStatus:         after.Status,
		Validation:        verdict.Audit(),
		RiskScore:         &score,
		ImmediateDecision: immediate,
		Source:            "process_quote",
		ReviewDecision:    d,
	})
	if err != nil {
		return []Advisory{{Kind: AdvisoryAuditLog, Message: err.Error()}}
	}
	return nil
}

func (u *QuoteProcessingUseCase) message(status entities.QuoteStatus, q entities.Quote) string {
	switch status {
	case entities.QuoteStatusApproved:
		return messageApproved
	case entities.QuoteStatusUnderReview:
		return messageUnderReview
	case entities.QuoteStatusRejected:
		return fmt.Sprintf(messageRejected, q.RejectionReason)
	case entities.QuoteStatusNeedsInfo:
		return fmt.Sprintf(messageNeedsInfo, q.ReviewReason)
	default:
		return fmt.Sprintf(messageDefault, status)
	}
}

func (u *QuoteProcessingUseCase) rejectionText(reasons []string) string {
	parts := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if msg, ok := u.rejection[r]; ok {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, r)
	}
	if len(parts) == 0 {
		return "quote did not pass validation"
	}
	return strings.Join(parts, "; ")
}

func rejectionMessages(r underwriting.Rules) map[string]string {
	return map[string]string{
		underwriting.ReasonValueExceedsMaximum:  fmt.Sprintf("Shipment value exceeds the maximum insurable amount of %s USD", r.MaxShipmentValue.StringFixed(0)),
		underwriting.ReasonCargoTypeNotApproved: "Cargo type is not covered under current underwriting guidelines",
		underwriting.ReasonRestrictedCountry:    "Shipments to or from restricted countries cannot be insured",
		underwriting.ReasonStartDateInPast:      "Coverage start date cannot be in the past",
		underwriting.ReasonCoverageTooShort:     fmt.Sprintf("Coverage period must be at least %d day(s)", r.MinCoverageDays),
		underwriting.ReasonCoverageTooLong:      fmt.Sprintf("Coverage period cannot exceed %d days", r.MaxCoverageDays),
	}
}

func approvePatch(patch *entities.QuotePatch, q entities.Quote, now time.Time) {
	patch.SetStatus(entities.QuoteStatusApproved)
	if q.ApprovedAt == nil {
		patch.ApprovedAt = &now
	}
}

// applyReviewToPatch folds a review decision into patch and returns the
// status it leads to. approved_at and reviewed_at are only set once.
func applyReviewToPatch(patch *entities.QuotePatch, q entities.Quote, d entities.ReviewDecision, now time.Time) (entities.QuoteStatus, error) {
	status, ok := d.Decision.ResultingStatus()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidReviewDecision, d.Decision)
	}

	outcome, reason, notes := d.Decision, d.Reason, d.UnderwriterNotes
	patch.SetStatus(status)
	patch.ReviewDecision = &outcome
	patch.ReviewReason = &reason
	patch.UnderwriterNotes = &notes
	if q.ReviewedAt == nil {
		patch.ReviewedAt = &now
	}

	switch status {
	case entities.QuoteStatusApproved:
		if q.ApprovedAt == nil {
			patch.ApprovedAt = &now
		}
	case entities.QuoteStatusRejected:
		rejection := reason
		if strings.TrimSpace(rejection) == "" {
			rejection = "rejected by review"
		}
		patch.RejectionReason = &rejection
	case entities.QuoteStatusNeedsInfo:
	default:
		return "", fmt.Errorf("%w: unexpected status %q", ErrInvalidReviewDecision, status)
	}
	return status, nil
}
