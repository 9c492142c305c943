package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const quoteColumns = `id, quote_number, cargo_type, shipment_value::text,
	origin_country, origin_city, destination_country, destination_city,
	transportation_mode, start_date, end_date, coverage_tier,
	premium::text, deductible::text, status, risk_score,
	rejection_reason, review_decision, review_reason, underwriter_notes,
	approval_conditions, approved_at, reviewed_at, review_queued_at,
	quote_expires_at, payment_status, created_at, updated_at`

// QuoteRepository is the relational quote store. Updates are plain
// UPDATE ... SET statements: concurrent writers are last-writer-wins.
type QuoteRepository struct {
	db DBTX
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(db DBTX) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	conditions := q.ApprovalConditions
	if conditions == nil {
		conditions = []string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO quotes (
			id, quote_number, cargo_type, shipment_value,
			origin_country, origin_city, destination_country, destination_city,
			transportation_mode, start_date, end_date, coverage_tier,
			premium, deductible, status, risk_score,
			rejection_reason, review_decision, review_reason, underwriter_notes,
			approval_conditions, approved_at, reviewed_at, review_queued_at,
			quote_expires_at, payment_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4::text::numeric,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13::text::numeric, $14::text::numeric, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23, $24,
			$25, $26, $27, $28
		)`,
		q.ID, q.QuoteNumber, q.CargoType, q.ShipmentValue.String(),
		q.Origin.Country, q.Origin.City, q.Destination.Country, q.Destination.City,
		string(q.TransportationMode), q.StartDate, q.EndDate, string(q.CoverageTier),
		q.Premium.String(), q.Deductible.String(), string(q.Status), q.RiskScore,
		nullable(q.RejectionReason), nullable(string(q.ReviewDecision)), nullable(q.ReviewReason), nullable(q.UnderwriterNotes),
		conditions, q.ApprovedAt, q.ReviewedAt, q.ReviewQueuedAt,
		q.QuoteExpiresAt, string(q.PaymentStatus), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

// GetByID returns a zero Quote when the row does not exist.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	q, err := scanQuote(r.db.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Quote{}, nil
	}
	return q, err
}

// Update returns a zero Quote when the row does not exist or no longer has
// the patch's expected status.
func (r *QuoteRepository) Update(ctx context.Context, id string, patch entities.QuotePatch) (entities.Quote, error) {
	sql, args := buildQuoteUpdate(id, patch, time.Now().UTC())
	q, err := scanQuote(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Quote{}, nil
	}
	return q, err
}

func (r *QuoteRepository) ListByStatus(ctx context.Context, status entities.QuoteStatus) ([]entities.Quote, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE status = $1 ORDER BY created_at ASC`, string(status))
}

func (r *QuoteRepository) ListExpiredSubmitted(ctx context.Context, now time.Time) ([]entities.Quote, error) {
	return r.list(ctx, `SELECT `+quoteColumns+` FROM quotes
		WHERE status = $1 AND quote_expires_at < $2
		ORDER BY created_at ASC`, string(entities.QuoteStatusSubmitted), now)
}

func (r *QuoteRepository) list(ctx context.Context, sql string, args ...any) ([]entities.Quote, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []entities.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// buildQuoteUpdate renders the non-nil patch fields as one UPDATE statement
// returning the new row. updated_at is always written; $1 is the id.
func buildQuoteUpdate(id string, p entities.QuotePatch, now time.Time) (string, []any) {
	args := []any{id}
	var sets []string
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Status != nil {
		set("status", string(*p.Status))
	}
	if p.RiskScore != nil {
		set("risk_score", *p.RiskScore)
	}
	if p.RejectionReason != nil {
		set("rejection_reason", *p.RejectionReason)
	}
	if p.ReviewDecision != nil {
		set("review_decision", string(*p.ReviewDecision))
	}
	if p.ReviewReason != nil {
		set("review_reason", *p.ReviewReason)
	}
	if p.UnderwriterNotes != nil {
		set("underwriter_notes", *p.UnderwriterNotes)
	}
	if p.ApprovalConditions != nil {
		set("approval_conditions", p.ApprovalConditions)
	}
	if p.ApprovedAt != nil {
		set("approved_at", *p.ApprovedAt)
	}
	if p.ReviewedAt != nil {
		set("reviewed_at", *p.ReviewedAt)
	}
	if p.ReviewQueuedAt != nil {
		set("review_queued_at", *p.ReviewQueuedAt)
	}
	updatedAt := now
	if !p.UpdatedAt.IsZero() {
		updatedAt = p.UpdatedAt
	}
	set("updated_at", updatedAt)

	where := `id = $1`
	if p.ExpectedStatus != nil {
		args = append(args, string(*p.ExpectedStatus))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	return `UPDATE quotes SET ` + strings.Join(sets, ", ") + ` WHERE ` + where + ` RETURNING ` + quoteColumns, args
}

func scanQuote(row pgx.Row) (entities.Quote, error) {
	var (
		q                                            entities.Quote
		value, premium, deductible                   string
		mode, tier, status, payment                  string
		rejection, reviewDecision, reviewReason, uwn *string
	)
	err := row.Scan(
		&q.ID, &q.QuoteNumber, &q.CargoType, &value,
		&q.Origin.Country, &q.Origin.City, &q.Destination.Country, &q.Destination.City,
		&mode, &q.StartDate, &q.EndDate, &tier,
		&premium, &deductible, &status, &q.RiskScore,
		&rejection, &reviewDecision, &reviewReason, &uwn,
		&q.ApprovalConditions, &q.ApprovedAt, &q.ReviewedAt, &q.ReviewQueuedAt,
		&q.QuoteExpiresAt, &payment, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return entities.Quote{}, err
	}

	if q.Status, err = entities.ParseQuoteStatus(status); err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: %w", q.ID, err)
	}
	if q.ShipmentValue, err = decimal.NewFromString(value); err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: shipment_value: %w", q.ID, err)
	}
	if q.Premium, err = decimal.NewFromString(premium); err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: premium: %w", q.ID, err)
	}
	if q.Deductible, err = decimal.NewFromString(deductible); err != nil {
		return entities.Quote{}, fmt.Errorf("quote %s: deductible: %w", q.ID, err)
	}
	q.TransportationMode = entities.TransportationMode(mode)
	q.CoverageTier = entities.CoverageTier(tier)
	q.PaymentStatus = entities.PaymentStatus(payment)
	q.RejectionReason = deref(rejection)
	q.ReviewDecision = entities.ReviewOutcome(deref(reviewDecision))
	q.ReviewReason = deref(reviewReason)
	q.UnderwriterNotes = deref(uwn)
	if len(q.ApprovalConditions) == 0 {
		q.ApprovalConditions = nil
	}
	return q, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
