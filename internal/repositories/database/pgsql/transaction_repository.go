package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/apperrors"
	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction log.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, type, from_account, to_account, amount, status, description, created_at`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func transactionArgs(txn domain.Transaction) []any {
	return []any{
		txn.TransactionID,
		txn.Type,
		txn.FromAccount,
		txn.ToAccount,
		txn.Amount,
		txn.Status,
		txn.Description,
		txn.Timestamp,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Type,
		&txn.FromAccount,
		&txn.ToAccount,
		&txn.Amount,
		&txn.Status,
		&txn.Description,
		&txn.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
	}
	return &txn, nil
}

// SaveTransaction appends a transaction record without touching balances.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, err := r.Pool.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}
	return nil
}

// SaveTransactionWithBalances appends a transaction record and applies the
// balance deltas within a single database transaction. Rows for every touched
// account are locked with SELECT ... FOR UPDATE in account-number order, the
// same ordering the service-level locks use, so money never leaves one
// account without arriving at the other.
func (r *PgxTransactionRepository) SaveTransactionWithBalances(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits successfully.
	defer r.Rollback(ctx, tx)

	accountNumbers := make([]string, 0, len(balanceChanges))
	for number := range balanceChanges {
		accountNumbers = append(accountNumbers, number)
	}
	sort.Strings(accountNumbers)

	lockQuery := `SELECT balance FROM accounts WHERE account_number = $1 FOR UPDATE;`
	updateQuery := `UPDATE accounts SET balance = $2, last_updated_at = $3 WHERE account_number = $1;`
	for _, number := range accountNumbers {
		var balance decimal.Decimal
		if err := tx.QueryRow(ctx, lockQuery, number).Scan(&balance); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to lock account "+number, err)
		}
		newBalance := balance.Add(balanceChanges[number])
		if _, err := tx.Exec(ctx, updateQuery, number, newBalance, now); err != nil {
			return apperrors.NewAppError(500, "failed to update balance of account "+number, err)
		}
	}

	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction updates the status and description of an existing record.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `UPDATE transactions SET status = $2, description = $3 WHERE transaction_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, txn.TransactionID, txn.Status, txn.Description)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionByID retrieves a single transaction record.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

// FindTransactionsByFromAndTo retrieves every record between a (source, destination) pair.
func (r *PgxTransactionRepository) FindTransactionsByFromAndTo(ctx context.Context, fromAccount, toAccount string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE from_account = $1 AND to_account = $2 ORDER BY created_at;`
	return r.queryTransactions(ctx, query, fromAccount, toAccount)
}

// FindTransactionsByTimestampAfter retrieves all records created after the cutoff.
func (r *PgxTransactionRepository) FindTransactionsByTimestampAfter(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE created_at > $1 ORDER BY created_at;`
	return r.queryTransactions(ctx, query, cutoff)
}

// CountTransactionsByFromAndTimestampAfter counts records with the given source after the cutoff.
func (r *PgxTransactionRepository) CountTransactionsByFromAndTimestampAfter(ctx context.Context, fromAccount string, cutoff time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE from_account = $1 AND created_at > $2;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, fromAccount, cutoff).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions for "+fromAccount, err)
	}
	return count, nil
}

// CountTransactionsByFromAndStatusAndTimestampAfter counts records with the
// given source and status after the cutoff.
func (r *PgxTransactionRepository) CountTransactionsByFromAndStatusAndTimestampAfter(ctx context.Context, fromAccount string, status domain.TransactionStatus, cutoff time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE from_account = $1 AND status = $2 AND created_at > $3;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, fromAccount, status, cutoff).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions for "+fromAccount, err)
	}
	return count, nil
}

// FindTransactionsByAccount retrieves every record touching the account, as
// source or destination, in creation order.
func (r *PgxTransactionRepository) FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE from_account = $1 OR to_account = $1 ORDER BY created_at;`
	return r.queryTransactions(ctx, query, accountNumber)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transactions", err)
	}
	return txns, nil
}
