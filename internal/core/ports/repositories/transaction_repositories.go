package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// TransactionReader defines the queries the ledger engine and risk monitor
// run against the transaction log.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction record.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByFromAndTo retrieves every record between a (source, destination) pair.
	FindTransactionsByFromAndTo(ctx context.Context, fromAccount, toAccount string) ([]domain.Transaction, error)

	// FindTransactionsByTimestampAfter retrieves all records created after the cutoff.
	FindTransactionsByTimestampAfter(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error)

	// CountTransactionsByFromAndTimestampAfter counts records with the given source after the cutoff.
	CountTransactionsByFromAndTimestampAfter(ctx context.Context, fromAccount string, cutoff time.Time) (int64, error)

	// CountTransactionsByFromAndStatusAndTimestampAfter counts records with the given
	// source and status after the cutoff.
	CountTransactionsByFromAndStatusAndTimestampAfter(ctx context.Context, fromAccount string, status domain.TransactionStatus, cutoff time.Time) (int64, error)

	// FindTransactionsByAccount retrieves every record touching the account,
	// as source or destination, in creation order.
	FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
}

// TransactionWriter defines append and update operations on the transaction log.
type TransactionWriter interface {
	// SaveTransaction appends a transaction record without touching balances.
	// Used for FAILED attempts, where no balance moved.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactionWithBalances appends a SUCCESS transaction record and applies
	// the given balance deltas as a single atomic unit. A crash or concurrent
	// observer never sees the record without the balance changes or vice versa.
	SaveTransactionWithBalances(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, now time.Time) error

	// UpdateTransaction updates the status and description of an existing record.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction-log repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
