package services

import (
	"context"
	"time"
)

// RiskMonitorSvcFacade is the periodic suspicious-activity monitor.
type RiskMonitorSvcFacade interface {
	// Start runs the monitor loop until ctx is cancelled.
	Start(ctx context.Context)

	// EvaluateWindow scans the trailing window ending at now and flags
	// suspicious transactions. Exposed so tests can drive time directly.
	EvaluateWindow(ctx context.Context, now time.Time) error
}
