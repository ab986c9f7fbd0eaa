package services

import (
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
	"github.com/rsinghcodes/banking_system/internal/platform/config"
	"github.com/rsinghcodes/banking_system/internal/utils/locking"
)

// NewContainer creates the service container with properly initialized
// dependencies. A single KeyedMutex is shared between the ledger and account
// services so that freezes and money movement on the same account serialize.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	locks := locking.NewKeyedMutex()

	ledger := NewLedgerService(repos.AccountRepo, repos.UserRepo, repos.TransactionRepo, locks)
	account := NewAccountService(repos.AccountRepo, repos.UserRepo, repos.TransactionRepo, ledger, locks)
	user := NewUserService(repos.UserRepo)
	audit := NewAuditService(repos.AuditLogRepo)
	risk := NewRiskMonitorService(repos.TransactionRepo, repos.AccountRepo, account, audit, RiskMonitorOptions{
		Interval:           cfg.MonitorInterval,
		Window:             cfg.MonitorWindow,
		HighValueThreshold: cfg.HighValueThreshold,
		FrequentTxnLimit:   cfg.FrequentTxnLimit,
	})

	return &portssvc.ServiceContainer{
		Account:     account,
		Ledger:      ledger,
		User:        user,
		Audit:       audit,
		RiskMonitor: risk,
	}
}
