package domain

import "time"

// AuditLog is an append-only record of an administrative or automated action.
type AuditLog struct {
	AuditID     string    `json:"auditID"` // Primary Key (e.g., UUID)
	Action      string    `json:"action"`
	PerformedBy string    `json:"performedBy"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}
