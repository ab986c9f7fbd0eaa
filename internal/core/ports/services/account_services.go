package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
	"github.com/rsinghcodes/banking_system/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByNumber retrieves a specific account by its account number.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// GetAccountsByUser retrieves all accounts owned by a user.
	GetAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount creates a new account; a positive initial deposit runs
	// through the ledger engine as a DEPOSIT transaction.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccountStatus freezes or unfreezes an account, serialized with
	// in-flight ledger operations on the same account.
	UpdateAccountStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, updatedBy string) (*domain.Account, error)
}

// AccountAnalysisSvc defines derived statistics consumed by the risk monitor.
type AccountAnalysisSvc interface {
	// IsNewDestination reports whether no transfer between the pair was ever recorded.
	IsNewDestination(ctx context.Context, fromAccount, toAccount string) (bool, error)

	// GetAverageBalance computes the average of a running total seeded from the
	// account's current balance, walked over its full transaction history.
	GetAverageBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountAnalysisSvc
}
