package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
)

const (
	suspiciousFlagMessage = "Flagged as suspicious by monitoring service"
	flagAuditAction       = "ACCOUNT_FROZEN / TRANSACTION_FLAGGED"
	monitorActor          = "ADMIN"
)

// anomalyFactor: a balance counts as anomalous when it deviates from the
// average by more than twice the average.
var anomalyFactor = decimal.NewFromInt(2)

// RiskMonitorOptions configures the periodic monitor. Zero values fall back
// to the defaults used in production.
type RiskMonitorOptions struct {
	Interval           time.Duration   // how often a pass runs
	Window             time.Duration   // trailing window a pass scans
	HighValueThreshold decimal.Decimal // heuristic 1
	FrequentTxnLimit   int64           // heuristics 2 and 3
	Now                func() time.Time
}

func (o RiskMonitorOptions) withDefaults() RiskMonitorOptions {
	if o.Interval <= 0 {
		o.Interval = 5 * time.Minute
	}
	if o.Window <= 0 {
		o.Window = time.Hour
	}
	if o.HighValueThreshold.IsZero() {
		o.HighValueThreshold = decimal.NewFromInt(100000)
	}
	if o.FrequentTxnLimit <= 0 {
		o.FrequentTxnLimit = 5
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// riskMonitorService periodically scans the trailing transaction window and
// flags suspicious activity. Each pass reads everything fresh from the store;
// the monitor keeps no state between runs, which makes flagging idempotent
// and safe to re-evaluate on the next cycle.
type riskMonitorService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	accountSvc  portssvc.AccountSvcFacade
	auditSvc    portssvc.AuditSvcFacade
	opts        RiskMonitorOptions
}

// NewRiskMonitorService creates the suspicious-activity monitor.
func NewRiskMonitorService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	accountSvc portssvc.AccountSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	opts RiskMonitorOptions,
) portssvc.RiskMonitorSvcFacade {
	return &riskMonitorService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		accountSvc:  accountSvc,
		auditSvc:    auditSvc,
		opts:        opts.withDefaults(),
	}
}

// Ensure riskMonitorService implements the RiskMonitorSvcFacade interface
var _ portssvc.RiskMonitorSvcFacade = (*riskMonitorService)(nil)

// Start runs the monitor loop until ctx is cancelled.
func (s *riskMonitorService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.LogInfo(ctx, "risk monitor started",
		slog.Duration("interval", s.opts.Interval),
		slog.Duration("window", s.opts.Window))

	for {
		select {
		case <-ctx.Done():
			s.LogInfo(ctx, "risk monitor stopped")
			return
		case <-ticker.C:
			if err := s.EvaluateWindow(ctx, s.opts.Now()); err != nil {
				s.LogError(ctx, err, "risk monitor pass failed")
			}
		}
	}
}

// EvaluateWindow scans the trailing window ending at now. Transactions are
// evaluated and, when flagged, committed independently: a failure on one must
// not unwind flags already persisted earlier in the same pass.
func (s *riskMonitorService) EvaluateWindow(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.opts.Window)
	recent, err := s.txnRepo.FindTransactionsByTimestampAfter(ctx, cutoff)
	if err != nil {
		return err
	}

	for i := range recent {
		if err := s.evaluate(ctx, recent[i], cutoff); err != nil {
			s.LogError(ctx, err, "transaction evaluation failed",
				slog.String("transaction_id", recent[i].TransactionID))
		}
	}
	return nil
}

// evaluate scores one transaction against the heuristics. Any single match
// is sufficient to flag.
func (s *riskMonitorService) evaluate(ctx context.Context, txn domain.Transaction, cutoff time.Time) error {
	// 1. High value
	suspicious := txn.Amount.GreaterThanOrEqual(s.opts.HighValueThreshold)

	if txn.FromAccount == "" {
		// Deposits carry no source account, so the source-based heuristics
		// cannot apply and there is no account to freeze.
		if !suspicious {
			return nil
		}
		return s.flag(ctx, txn, "")
	}

	// 2. Frequency within the window
	if !suspicious {
		count, err := s.txnRepo.CountTransactionsByFromAndTimestampAfter(ctx, txn.FromAccount, cutoff)
		if err != nil {
			return err
		}
		suspicious = count >= s.opts.FrequentTxnLimit
	}

	// 3. Repeated failures within the window
	if !suspicious && txn.Status == domain.TxnFailed {
		failed, err := s.txnRepo.CountTransactionsByFromAndStatusAndTimestampAfter(ctx, txn.FromAccount, domain.TxnFailed, cutoff)
		if err != nil {
			return err
		}
		suspicious = failed >= s.opts.FrequentTxnLimit
	}

	// 4. Novel destination
	if !suspicious && txn.Type == domain.Transfer {
		isNew, err := s.accountSvc.IsNewDestination(ctx, txn.FromAccount, txn.ToAccount)
		if err != nil {
			return err
		}
		suspicious = isNew
	}

	// 5. Balance anomaly against the synthetic running average
	if !suspicious {
		avg, err := s.accountSvc.GetAverageBalance(ctx, txn.FromAccount)
		if err != nil {
			return err
		}
		acct, err := s.accountRepo.FindAccountByNumber(ctx, txn.FromAccount)
		if err != nil {
			return err
		}
		suspicious = acct.Balance.Sub(avg).Abs().GreaterThan(avg.Mul(anomalyFactor))
	}

	if !suspicious {
		return nil
	}
	return s.flag(ctx, txn, txn.FromAccount)
}

// flag re-opens the transaction as a PENDING marker, freezes the source
// account and appends one audit entry. Re-flagging an already-frozen account
// is a no-op for account state.
func (s *riskMonitorService) flag(ctx context.Context, txn domain.Transaction, sourceAccount string) error {
	txn.Description = suspiciousFlagMessage
	txn.Status = domain.TxnPending
	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		return err
	}

	if sourceAccount != "" {
		if _, err := s.accountSvc.UpdateAccountStatus(ctx, sourceAccount, domain.AccountFrozen, monitorActor); err != nil {
			return err
		}
	}

	details := fmt.Sprintf("Transaction ID: %s, From Account: %s, Reason: %s",
		txn.TransactionID, txn.FromAccount, txn.Description)
	if err := s.auditSvc.LogAction(ctx, flagAuditAction, monitorActor, details); err != nil {
		// The flag and freeze are already committed; a lost audit entry is
		// logged rather than unwinding them.
		s.LogError(ctx, err, "failed to append audit entry",
			slog.String("transaction_id", txn.TransactionID))
	}

	s.LogWarn(ctx, "transaction flagged as suspicious",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from_account", txn.FromAccount))
	return nil
}
