package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/apperrors"
	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
	"github.com/rsinghcodes/banking_system/internal/dto"
	"github.com/rsinghcodes/banking_system/internal/utils/locking"
)

// accountService manages account lifecycle and the derived statistics the
// risk monitor consumes.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	txnRepo     portsrepo.TransactionReader
	ledger      portssvc.LedgerSvcFacade
	locks       *locking.KeyedMutex
	now         func() time.Time
}

// NewAccountService creates a new account service. The KeyedMutex must be the
// instance shared with the ledger service: freezing an account contends for
// the same per-account lock as money movement on it.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	userRepo portsrepo.UserReader,
	txnRepo portsrepo.TransactionReader,
	ledger portssvc.LedgerSvcFacade,
	locks *locking.KeyedMutex,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		txnRepo:     txnRepo,
		ledger:      ledger,
		locks:       locks,
		now:         time.Now,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new ACTIVE account for an existing user. A positive
// initial deposit is applied through the ledger engine so it shows up in the
// transaction log like any other deposit.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("account owner: %w", err)
	}

	if req.AccountType == domain.Savings && req.InitialDeposit.LessThan(req.AccountType.MinimumBalance()) {
		return nil, fmt.Errorf("initial deposit must be at least the minimum balance for %s: %w",
			req.AccountType, apperrors.ErrValidation)
	}

	now := s.now()
	account := domain.Account{
		AccountNumber: generateAccountNumber(now),
		UserID:        user.UserID,
		AccountType:   req.AccountType,
		Balance:       decimal.Zero,
		Status:        domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     user.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: user.UserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	if req.InitialDeposit.GreaterThan(decimal.Zero) {
		txn, err := s.ledger.Deposit(ctx, account.AccountNumber, req.InitialDeposit)
		if err != nil {
			return nil, err
		}
		if txn.Status == domain.TxnSuccess {
			account.Balance = req.InitialDeposit
		}
	}

	s.LogInfo(ctx, "account created",
		slog.String("account_number", account.AccountNumber),
		slog.String("user_id", user.UserID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByNumber retrieves a specific account by its account number.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// GetAccountsByUser retrieves all accounts owned by a user.
func (s *accountService) GetAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("account owner: %w", err)
	}
	return s.accountRepo.FindAccountsByUserID(ctx, userID)
}

// UpdateAccountStatus freezes or unfreezes an account. It goes through the
// same per-account lock as deposits, withdrawals and transfers, so a freeze
// never interleaves with an in-flight balance mutation on the same account.
func (s *accountService) UpdateAccountStatus(ctx context.Context, accountNumber string, status domain.AccountStatus, updatedBy string) (*domain.Account, error) {
	s.locks.Lock(accountNumber)
	defer s.locks.Unlock(accountNumber)

	acct, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	acct.Status = status
	acct.LastUpdatedAt = s.now()
	acct.LastUpdatedBy = updatedBy
	if err := s.accountRepo.UpdateAccount(ctx, *acct); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "account status updated",
		slog.String("account_number", accountNumber),
		slog.String("status", string(status)),
		slog.String("updated_by", updatedBy))
	return acct, nil
}

// IsNewDestination reports whether no transaction between the (from, to) pair
// has ever been recorded, successful or failed.
func (s *accountService) IsNewDestination(ctx context.Context, fromAccount, toAccount string) (bool, error) {
	history, err := s.txnRepo.FindTransactionsByFromAndTo(ctx, fromAccount, toAccount)
	if err != nil {
		return false, err
	}
	return len(history) == 0, nil
}

// GetAverageBalance computes the account's average balance for the anomaly
// heuristic. The running total is seeded from the CURRENT balance and walked
// forward across the full transaction history, accumulating each record's
// effect. The anomaly threshold is calibrated against exactly this
// computation; it is not a true historical balance average.
func (s *accountService) GetAverageBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	acct, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	history, err := s.txnRepo.FindTransactionsByAccount(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	if len(history) == 0 {
		return acct.Balance, nil
	}

	balance := acct.Balance
	total := decimal.Zero
	for _, txn := range history {
		switch {
		case txn.Type == domain.Deposit,
			txn.Type == domain.Transfer && txn.ToAccount == accountNumber:
			balance = balance.Add(txn.Amount)
		case txn.Type == domain.Withdrawal,
			txn.Type == domain.Transfer && txn.FromAccount == accountNumber:
			balance = balance.Sub(txn.Amount)
		}
		total = total.Add(balance)
	}
	return total.Div(decimal.NewFromInt(int64(len(history)))), nil
}

// generateAccountNumber produces an account number like ACCT-20250115-04821.
// Uniqueness is ultimately enforced by the store's primary key.
func generateAccountNumber(now time.Time) string {
	return fmt.Sprintf("ACCT-%s-%05d", now.Format("20060102"), rand.IntN(100000))
}
