package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	ErrQuoteNotFound         = errors.New("quote not found")
	ErrPersistence           = errors.New("quote persistence failed")
	ErrQuoteTerminal         = errors.New("quote is in a terminal state")
	ErrInvalidQuoteID        = errors.New("invalid quote id")
	ErrInvalidQuoteInput     = errors.New("invalid quote input")
	ErrInvalidQuoteStatus    = errors.New("invalid quote status")
	ErrInvalidReviewDecision = errors.New("invalid review decision")
)

// CreateQuoteCommand is the shape accepted at intake. Shipment attributes are
// immutable once the quote is stored.
type CreateQuoteCommand struct {
	CargoType          string
	ShipmentValue      decimal.Decimal
	Origin             entities.Location
	Destination        entities.Location
	TransportationMode entities.TransportationMode
	StartDate          time.Time
	EndDate            time.Time
	CoverageTier       entities.CoverageTier
	Premium            decimal.Decimal
	Deductible         decimal.Decimal
}

// IQuoteUseCase exposes quote intake and lookups.
//
// Intake only checks the input shape. Business rules (allow-lists, value
// ceiling, restricted countries) are applied later by ProcessQuote so that a
// rejected quote is still stored with its reasons.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Quote, error)
}

type QuoteUseCase struct {
	repo interfaces.IQuoteRepository
	settings
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, opts ...Option) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, settings: newSettings(opts)}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, cmd CreateQuoteCommand) (entities.Quote, error) {
	if err := validateCreateCommand(cmd); err != nil {
		return entities.Quote{}, err
	}

	ctx, span := tracer.Start(ctx, "QuoteUseCase.CreateQuote")
	defer span.End()

	now := u.now()
	id := uuid.NewString()
	q := entities.Quote{
		ID:                 id,
		QuoteNumber:        quoteNumber(id, now),
		CargoType:          strings.TrimSpace(cmd.CargoType),
		ShipmentValue:      cmd.ShipmentValue,
		Origin:             trimLocation(cmd.Origin),
		Destination:        trimLocation(cmd.Destination),
		TransportationMode: cmd.TransportationMode,
		StartDate:          cmd.StartDate.UTC(),
		EndDate:            cmd.EndDate.UTC(),
		CoverageTier:       cmd.CoverageTier,
		Premium:            cmd.Premium,
		Deductible:         cmd.Deductible,
		Status:             entities.QuoteStatusSubmitted,
		QuoteExpiresAt:     now.Add(u.quoteTTL),
		PaymentStatus:      entities.PaymentStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	span.SetAttributes(attribute.String("quote.id", id))

	callCtx, cancel := u.bounded(ctx)
	defer cancel()
	created, err := u.repo.Create(callCtx, q)
	if err != nil {
		u.logger.Error("[quote][usecase] create failed", zap.String("quote_id", id), zap.Error(err))
		return entities.Quote{}, fmt.Errorf("%w: create quote %s: %w", ErrPersistence, id, err)
	}
	u.logger.Info("[quote][usecase] quote submitted",
		zap.String("quote_id", created.ID),
		zap.String("quote_number", created.QuoteNumber),
		zap.String("cargo_type", created.CargoType),
	)
	return created, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	return loadQuote(ctx, u.repo, u.settings, id)
}

func (u *QuoteUseCase) ListByStatus(ctx context.Context, status string) ([]entities.Quote, error) {
	s, err := entities.ParseQuoteStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuoteStatus, err)
	}

	callCtx, cancel := u.bounded(ctx)
	defer cancel()
	quotes, err := u.repo.ListByStatus(callCtx, s)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s quotes: %w", ErrPersistence, s, err)
	}
	return quotes, nil
}

func validateCreateCommand(cmd CreateQuoteCommand) error {
	switch {
	case strings.TrimSpace(cmd.CargoType) == "":
		return fmt.Errorf("%w: cargo_type is required", ErrInvalidQuoteInput)
	case !cmd.ShipmentValue.IsPositive():
		return fmt.Errorf("%w: shipment_value must be positive", ErrInvalidQuoteInput)
	case !cmd.TransportationMode.IsValid():
		return fmt.Errorf("%w: unknown transportation_mode %q", ErrInvalidQuoteInput, cmd.TransportationMode)
	case cmd.CoverageTier != "" && !cmd.CoverageTier.IsValid():
		return fmt.Errorf("%w: unknown coverage_tier %q", ErrInvalidQuoteInput, cmd.CoverageTier)
	case cmd.StartDate.IsZero() || cmd.EndDate.IsZero():
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidQuoteInput)
	case !cmd.EndDate.After(cmd.StartDate):
		return fmt.Errorf("%w: end_date must be after start_date", ErrInvalidQuoteInput)
	case cmd.Premium.IsNegative() || cmd.Deductible.IsNegative():
		return fmt.Errorf("%w: premium and deductible cannot be negative", ErrInvalidQuoteInput)
	}
	return nil
}

// quoteNumber builds the display number CQ-YYYYMMDD-XXXXXX.
func quoteNumber(id string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("CQ-%s-%s", now.Format("20060102"), suffix)
}

func trimLocation(l entities.Location) entities.Location {
	return entities.Location{Country: strings.TrimSpace(l.Country), City: strings.TrimSpace(l.City)}
}

// loadQuote reads a quote under the call timeout and maps a missing row to
// ErrQuoteNotFound.
func loadQuote(ctx context.Context, repo interfaces.IQuoteRepository, s settings, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	callCtx, cancel := s.bounded(ctx)
	defer cancel()
	q, err := repo.GetByID(callCtx, id)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("%w: load quote %s: %w", ErrPersistence, id, err)
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// updateQuote writes patch as a single last-writer-wins update.
func updateQuote(ctx context.Context, repo interfaces.IQuoteRepository, s settings, id string, patch entities.QuotePatch) (entities.Quote, error) {
	callCtx, cancel := s.bounded(ctx)
	defer cancel()
	updated, err := repo.Update(callCtx, id, patch)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("%w: update quote %s: %w", ErrPersistence, id, err)
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return updated, nil
}

// appendAudit is best-effort: the error is logged and returned for the
// caller to record as an advisory, never to fail on.
func appendAudit(ctx context.Context, sink interfaces.IAuditLogSink, s settings, quoteID string, details entities.AuditDetails) error {
	if sink == nil {
		return nil
	}
	entry := entities.AuditLogEntry{
		ID:        uuid.NewString(),
		QuoteID:   quoteID,
		Action:    entities.AuditActionStatusChange,
		Details:   details,
		Timestamp: s.now(),
	}

	callCtx, cancel := s.bounded(ctx)
	defer cancel()
	if err := sink.Append(callCtx, entry); err != nil {
		s.logger.Warn("[quote][audit] append failed",
			zap.String("quote_id", quoteID),
			zap.String("new_status", string(details.NewStatus)),
			zap.Error(err),
		)
		s.metrics.IncrementAdvisory(string(AdvisoryAuditLog))
		trace.SpanFromContext(ctx).AddEvent("audit_append_failed")
		return err
	}
	return nil
}
