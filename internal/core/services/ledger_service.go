package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/apperrors"
	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
	"github.com/rsinghcodes/banking_system/internal/utils/locking"
)

// ledgerService applies deposit, withdraw and transfer operations.
//
// Correctness model: every operation locks the account numbers it touches
// through a shared KeyedMutex before reading balances, so two concurrent
// withdrawals against the same account cannot both validate against the same
// pre-mutation balance. Multi-account operations acquire locks in
// account-number order to rule out deadlock. The terminal SUCCESS record and
// its balance changes are committed through a single atomic store write.
//
// Outcome model: a business-rule violation is itself a business record, not an
// error. It is persisted as a FAILED transaction with the reason in the
// description and returned with a nil error. Only infrastructure faults
// (store unreachable, failed commit) surface as a returned error.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	txnRepo     portsrepo.TransactionRepositoryFacade
	locks       *locking.KeyedMutex
	now         func() time.Time
}

// NewLedgerService creates the transaction engine. The KeyedMutex must be the
// same instance shared with the account service, so that admin/monitor
// freezes serialize with in-flight money movement.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	userRepo portsrepo.UserReader,
	txnRepo portsrepo.TransactionRepositoryFacade,
	locks *locking.KeyedMutex,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		txnRepo:     txnRepo,
		locks:       locks,
		now:         time.Now,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Deposit credits amount to the destination account.
func (s *ledgerService) Deposit(ctx context.Context, toAccount string, amount decimal.Decimal) (*domain.Transaction, error) {
	txn := s.newTransaction(domain.Deposit, "", toAccount, amount)

	s.locks.Lock(toAccount)
	defer s.locks.Unlock(toAccount)

	if _, err := s.eligibleAccount(ctx, toAccount, "deposit to"); err != nil {
		return s.resolve(ctx, txn, err)
	}
	if err := validateAmount(amount, "deposit"); err != nil {
		return s.resolve(ctx, txn, err)
	}

	txn.Status = domain.TxnSuccess
	txn.Description = "Deposited " + amount.String()
	changes := map[string]decimal.Decimal{toAccount: amount}
	if err := s.txnRepo.SaveTransactionWithBalances(ctx, txn, changes, txn.Timestamp); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "deposit committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("to_account", toAccount),
		slog.String("amount", amount.String()))
	return &txn, nil
}

// Withdraw debits amount from the source account, keeping the balance at or
// above the account type's minimum.
func (s *ledgerService) Withdraw(ctx context.Context, fromAccount string, amount decimal.Decimal) (*domain.Transaction, error) {
	txn := s.newTransaction(domain.Withdrawal, fromAccount, "", amount)

	s.locks.Lock(fromAccount)
	defer s.locks.Unlock(fromAccount)

	acct, err := s.eligibleAccount(ctx, fromAccount, "withdraw from")
	if err != nil {
		return s.resolve(ctx, txn, err)
	}
	if err := validateAmount(amount, "withdrawal"); err != nil {
		return s.resolve(ctx, txn, err)
	}
	newBalance := acct.Balance.Sub(amount)
	if newBalance.LessThan(acct.AccountType.MinimumBalance()) {
		return s.resolve(ctx, txn, fmt.Errorf("minimum balance required: %w", apperrors.ErrInsufficientFunds))
	}

	txn.Status = domain.TxnSuccess
	changes := map[string]decimal.Decimal{fromAccount: amount.Neg()}
	if err := s.txnRepo.SaveTransactionWithBalances(ctx, txn, changes, txn.Timestamp); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "withdrawal committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from_account", fromAccount),
		slog.String("amount", amount.String()))
	return &txn, nil
}

// Transfer atomically moves amount from the source to the destination
// account. The destination owner's user status is deliberately not checked;
// only the source side gates on user eligibility.
func (s *ledgerService) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*domain.Transaction, error) {
	txn := s.newTransaction(domain.Transfer, fromAccount, toAccount, amount)

	// Both locks in account-number order, so two opposite transfers between
	// the same pair cannot deadlock.
	s.locks.LockAll(fromAccount, toAccount)
	defer s.locks.UnlockAll(fromAccount, toAccount)

	from, err := s.eligibleAccount(ctx, fromAccount, "transfer from")
	if err != nil {
		return s.resolve(ctx, txn, err)
	}
	to, err := s.accountRepo.FindAccountByNumber(ctx, toAccount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.resolve(ctx, txn, fmt.Errorf("destination account %s: %w", toAccount, apperrors.ErrNotFound))
		}
		return nil, err
	}
	if to.Status == domain.AccountFrozen {
		return s.resolve(ctx, txn, fmt.Errorf("cannot transfer to a frozen account: %w", apperrors.ErrAccountFrozen))
	}
	if err := validateAmount(amount, "transfer"); err != nil {
		return s.resolve(ctx, txn, err)
	}
	newBalance := from.Balance.Sub(amount)
	if newBalance.LessThan(from.AccountType.MinimumBalance()) {
		return s.resolve(ctx, txn, fmt.Errorf("insufficient funds in source account: %w", apperrors.ErrInsufficientFunds))
	}

	txn.Status = domain.TxnSuccess
	// Deltas are accumulated, not assigned, so a self-transfer nets to zero
	// instead of double-applying the credit.
	changes := make(map[string]decimal.Decimal, 2)
	changes[fromAccount] = changes[fromAccount].Sub(amount)
	changes[toAccount] = changes[toAccount].Add(amount)
	if err := s.txnRepo.SaveTransactionWithBalances(ctx, txn, changes, txn.Timestamp); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "transfer committed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from_account", fromAccount),
		slog.String("to_account", toAccount),
		slog.String("amount", amount.String()))
	return &txn, nil
}

// GetTransactionsOfAccount lists every record touching the account.
func (s *ledgerService) GetTransactionsOfAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	return s.txnRepo.FindTransactionsByAccount(ctx, accountNumber)
}

// eligibleAccount runs the common preconditions for an account participating
// in an operation: it exists, its owner is ACTIVE and it is not FROZEN.
func (s *ledgerService) eligibleAccount(ctx context.Context, accountNumber, verb string) (*domain.Account, error) {
	acct, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrNotFound)
		}
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, acct.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("owner of account %s: %w", accountNumber, apperrors.ErrNotFound)
		}
		return nil, err
	}
	if user.Status != domain.UserActive {
		return nil, fmt.Errorf("transaction blocked: %w", apperrors.ErrUserInactive)
	}
	if acct.Status == domain.AccountFrozen {
		return nil, fmt.Errorf("cannot %s a frozen account: %w", verb, apperrors.ErrAccountFrozen)
	}
	return acct, nil
}

// resolve turns a business-rule violation into a persisted FAILED record and
// lets infrastructure faults propagate untouched.
func (s *ledgerService) resolve(ctx context.Context, txn domain.Transaction, cause error) (*domain.Transaction, error) {
	if !apperrors.IsBusinessError(cause) {
		return nil, cause
	}
	txn.Status = domain.TxnFailed
	txn.Description = cause.Error()
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, err
	}
	s.LogWarn(ctx, "transaction failed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("reason", txn.Description))
	return &txn, nil
}

func (s *ledgerService) newTransaction(txType domain.TransactionType, from, to string, amount decimal.Decimal) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          txType,
		FromAccount:   from,
		ToAccount:     to,
		Amount:        amount,
		Status:        domain.TxnPending,
		Timestamp:     s.now(),
	}
}

func validateAmount(amount decimal.Decimal, verb string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%s %w", verb, apperrors.ErrInvalidAmount)
	}
	return nil
}
