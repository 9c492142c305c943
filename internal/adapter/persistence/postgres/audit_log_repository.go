package postgres

import (
	"context"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"
)

// AuditLogRepository appends audit entries; details are stored as JSONB.
type AuditLogRepository struct {
	db DBTX
}

var _ interfaces.IAuditLogSink = (*AuditLogRepository)(nil)

func NewAuditLogRepository(db DBTX) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, e entities.AuditLogEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO quote_audit_logs (id, quote_id, action, details, "timestamp")
		VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.QuoteID, string(e.Action), e.Details, e.Timestamp,
	)
	return err
}

// ListByQuoteID returns a quote's audit trail, oldest first.
func (r *AuditLogRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.AuditLogEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, quote_id, action, details, "timestamp"
		FROM quote_audit_logs
		WHERE quote_id = $1
		ORDER BY "timestamp" ASC`, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.AuditLogEntry
	for rows.Next() {
		var (
			e      entities.AuditLogEntry
			action string
		)
		if err := rows.Scan(&e.ID, &e.QuoteID, &action, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Action = entities.AuditAction(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
