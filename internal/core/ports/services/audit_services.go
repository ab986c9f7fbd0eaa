package services

import (
	"context"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// AuditSvcFacade defines the append-only audit log surface.
type AuditSvcFacade interface {
	// LogAction appends an audit entry for an administrative or automated action.
	LogAction(ctx context.Context, action, performedBy, details string) error

	// ListLogs retrieves all audit entries.
	ListLogs(ctx context.Context) ([]domain.AuditLog, error)
}
