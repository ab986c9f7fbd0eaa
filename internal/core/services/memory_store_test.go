package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/apperrors"
	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portsrepo "github.com/rsinghcodes/banking_system/internal/core/ports/repositories"
)

// memStore is a thread-safe in-memory implementation of all repository
// facades. It lets the suites exercise full service flows, including the
// concurrent ones, without a database.
type memStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	accounts map[string]domain.Account
	txns     []domain.Transaction
	audits   []domain.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.Account),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade        = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*memStore)(nil)
	_ portsrepo.AuditLogRepositoryFacade    = (*memStore)(nil)
)

// --- users ---

func (s *memStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.ErrDuplicate
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *memStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) UpdateUserStatus(_ context.Context, userID string, status domain.UserStatus, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Status = status
	u.LastUpdatedBy = updatedBy
	s.users[userID] = u
	return nil
}

// --- accounts ---

func (s *memStore) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountNumber] = account
	return nil
}

func (s *memStore) FindAccountByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *memStore) FindAccountsByUserID(_ context.Context, userID string) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Account
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountNumber]; !ok {
		return apperrors.ErrNotFound
	}
	s.accounts[account.AccountNumber] = account
	return nil
}

// --- transactions ---

func (s *memStore) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, txn)
	return nil
}

func (s *memStore) SaveTransactionWithBalances(_ context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for number := range balanceChanges {
		if _, ok := s.accounts[number]; !ok {
			return apperrors.ErrNotFound
		}
	}
	for number, delta := range balanceChanges {
		a := s.accounts[number]
		a.Balance = a.Balance.Add(delta)
		a.LastUpdatedAt = now
		s.accounts[number] = a
	}
	s.txns = append(s.txns, txn)
	return nil
}

func (s *memStore) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txns {
		if s.txns[i].TransactionID == txn.TransactionID {
			s.txns[i].Status = txn.Status
			s.txns[i].Description = txn.Description
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txns {
		if s.txns[i].TransactionID == transactionID {
			txn := s.txns[i]
			return &txn, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *memStore) FindTransactionsByFromAndTo(_ context.Context, fromAccount, toAccount string) ([]domain.Transaction, error) {
	return s.filter(func(t domain.Transaction) bool {
		return t.FromAccount == fromAccount && t.ToAccount == toAccount
	}), nil
}

func (s *memStore) FindTransactionsByTimestampAfter(_ context.Context, cutoff time.Time) ([]domain.Transaction, error) {
	return s.filter(func(t domain.Transaction) bool {
		return t.Timestamp.After(cutoff)
	}), nil
}

func (s *memStore) CountTransactionsByFromAndTimestampAfter(_ context.Context, fromAccount string, cutoff time.Time) (int64, error) {
	return int64(len(s.filter(func(t domain.Transaction) bool {
		return t.FromAccount == fromAccount && t.Timestamp.After(cutoff)
	}))), nil
}

func (s *memStore) CountTransactionsByFromAndStatusAndTimestampAfter(_ context.Context, fromAccount string, status domain.TransactionStatus, cutoff time.Time) (int64, error) {
	return int64(len(s.filter(func(t domain.Transaction) bool {
		return t.FromAccount == fromAccount && t.Status == status && t.Timestamp.After(cutoff)
	}))), nil
}

func (s *memStore) FindTransactionsByAccount(_ context.Context, accountNumber string) ([]domain.Transaction, error) {
	return s.filter(func(t domain.Transaction) bool {
		return t.FromAccount == accountNumber || t.ToAccount == accountNumber
	}), nil
}

func (s *memStore) filter(keep func(domain.Transaction) bool) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, t := range s.txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// --- audit log ---

func (s *memStore) SaveAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits = append(s.audits, entry)
	return nil
}

func (s *memStore) ListAuditLogs(_ context.Context) ([]domain.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out, nil
}

// --- seeding helpers ---

var accountSeq int

func (s *memStore) seedUser(status domain.UserStatus) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("user-%d", len(s.users)+1)
	u := domain.User{
		UserID: id,
		Name:   "Test User " + id,
		Email:  id + "@example.com",
		Status: status,
	}
	s.users[id] = u
	return u
}

func (s *memStore) seedAccount(userID string, accountType domain.AccountType, balance decimal.Decimal, status domain.AccountStatus) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	accountSeq++
	a := domain.Account{
		AccountNumber: fmt.Sprintf("ACCT-TEST-%05d", accountSeq),
		UserID:        userID,
		AccountType:   accountType,
		Balance:       balance,
		Status:        status,
	}
	s.accounts[a.AccountNumber] = a
	return a
}

func (s *memStore) balanceOf(accountNumber string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountNumber].Balance
}

func (s *memStore) accountStatus(accountNumber string) domain.AccountStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountNumber].Status
}

func (s *memStore) transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}
