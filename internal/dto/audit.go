package dto

import (
	"time"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// AuditLogResponse defines the data returned for an audit entry.
type AuditLogResponse struct {
	AuditID     string    `json:"auditID"`
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToListAuditLogResponse converts audit entries to DTOs.
func ToListAuditLogResponse(entries []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditLogResponse{
			AuditID:     e.AuditID,
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Details:     e.Details,
			CreatedAt:   e.CreatedAt,
		}
	}
	return res
}
