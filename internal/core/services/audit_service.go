package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
)

// auditService appends and lists audit entries. Entries are write-once.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepositoryFacade
	now       func() time.Time
}

// NewAuditService creates a new audit log service.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

// Ensure auditService implements the AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// LogAction appends an audit entry for an administrative or automated action.
func (s *auditService) LogAction(ctx context.Context, action, performedBy, details string) error {
	entry := domain.AuditLog{
		AuditID:     uuid.NewString(),
		Action:      action,
		PerformedBy: performedBy,
		Details:     details,
		CreatedAt:   s.now(),
	}
	return s.auditRepo.SaveAuditLog(ctx, entry)
}

// ListLogs retrieves all audit entries.
func (s *auditService) ListLogs(ctx context.Context) ([]domain.AuditLog, error) {
	return s.auditRepo.ListAuditLogs(ctx)
}
