package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// LedgerSvcFacade is the transaction engine. Every call returns a terminal
// transaction record: business-rule violations come back as a FAILED record
// with a nil error, and only infrastructure faults return a non-nil error.
type LedgerSvcFacade interface {
	// Deposit credits amount to the destination account.
	Deposit(ctx context.Context, toAccount string, amount decimal.Decimal) (*domain.Transaction, error)

	// Withdraw debits amount from the source account, respecting the account
	// type's minimum balance.
	Withdraw(ctx context.Context, fromAccount string, amount decimal.Decimal) (*domain.Transaction, error)

	// Transfer atomically moves amount between two accounts. Either both
	// balance updates commit or neither does.
	Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*domain.Transaction, error)

	// GetTransactionsOfAccount lists every record touching the account.
	GetTransactionsOfAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
}
