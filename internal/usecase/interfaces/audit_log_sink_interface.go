package interfaces

import (
	"context"

	"cargo_underwriting/internal/domain/entities"
)

// IAuditLogSink appends audit entries. Callers treat every error as advisory.

type IAuditLogSink interface {
	Append(ctx context.Context, entry entities.AuditLogEntry) error
}
