package repositories

import (
	"context"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// AuditLogRepositoryFacade defines the append-only audit log operations.
type AuditLogRepositoryFacade interface {
	// SaveAuditLog appends an audit entry. Entries are never updated or deleted.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// ListAuditLogs retrieves all audit entries, newest first.
	ListAuditLogs(ctx context.Context) ([]domain.AuditLog, error)
}
