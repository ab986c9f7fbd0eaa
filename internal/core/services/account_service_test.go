package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rsinghcodes/banking_system/internal/apperrors"
	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
	"github.com/rsinghcodes/banking_system/internal/core/services"
	"github.com/rsinghcodes/banking_system/internal/dto"
	"github.com/rsinghcodes/banking_system/internal/utils/locking"
)

type AccountServiceTestSuite struct {
	suite.Suite
	store   *memStore
	ledger  portssvc.LedgerSvcFacade
	service portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	locks := locking.NewKeyedMutex()
	suite.ledger = services.NewLedgerService(suite.store, suite.store, suite.store, locks)
	suite.service = services.NewAccountService(suite.store, suite.store, suite.store, suite.ledger, locks)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Checking() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		UserID:      user.UserID,
		AccountType: domain.Checking,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.True(strings.HasPrefix(account.AccountNumber, "ACCT-"))
	suite.Equal(user.UserID, account.UserID)
	suite.Equal(domain.AccountActive, account.Status)
	suite.True(account.Balance.IsZero())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InitialDepositGoesThroughLedger() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		UserID:         user.UserID,
		AccountType:    domain.Checking,
		InitialDeposit: decimal.NewFromInt(750),
	})

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromInt(750)))
	suite.True(suite.store.balanceOf(account.AccountNumber).Equal(decimal.NewFromInt(750)))

	txns := suite.store.transactions()
	suite.Require().Len(txns, 1)
	suite.Equal(domain.Deposit, txns[0].Type)
	suite.Equal(domain.TxnSuccess, txns[0].Status)
	suite.Equal(account.AccountNumber, txns[0].ToAccount)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SavingsBelowMinimumRejected() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		UserID:         user.UserID,
		AccountType:    domain.Savings,
		InitialDeposit: decimal.NewFromInt(499),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SavingsAtMinimum() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		UserID:         user.UserID,
		AccountType:    domain.Savings,
		InitialDeposit: decimal.NewFromInt(500),
	})

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(decimal.NewFromInt(500)))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownOwner() {
	ctx := context.Background()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		UserID:      "user-missing",
		AccountType: domain.Checking,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_Freeze() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)
	acct := suite.store.seedAccount(user.UserID, domain.Checking, decimal.NewFromInt(100), domain.AccountActive)

	updated, err := suite.service.UpdateAccountStatus(ctx, acct.AccountNumber, domain.AccountFrozen, "ADMIN")

	suite.Require().NoError(err)
	suite.Equal(domain.AccountFrozen, updated.Status)
	suite.Equal("ADMIN", updated.LastUpdatedBy)
	suite.Equal(domain.AccountFrozen, suite.store.accountStatus(acct.AccountNumber))
}

func (suite *AccountServiceTestSuite) TestUpdateAccountStatus_UnknownAccount() {
	ctx := context.Background()

	updated, err := suite.service.UpdateAccountStatus(ctx, "ACCT-MISSING", domain.AccountFrozen, "ADMIN")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(updated)
}

func (suite *AccountServiceTestSuite) TestIsNewDestination() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)
	from := suite.store.seedAccount(user.UserID, domain.Checking, decimal.NewFromInt(1000), domain.AccountActive)
	to := suite.store.seedAccount(user.UserID, domain.Checking, decimal.NewFromInt(0), domain.AccountActive)

	isNew, err := suite.service.IsNewDestination(ctx, from.AccountNumber, to.AccountNumber)
	suite.Require().NoError(err)
	suite.True(isNew)

	_, err = suite.ledger.Transfer(ctx, from.AccountNumber, to.AccountNumber, decimal.NewFromInt(10))
	suite.Require().NoError(err)

	isNew, err = suite.service.IsNewDestination(ctx, from.AccountNumber, to.AccountNumber)
	suite.Require().NoError(err)
	suite.False(isNew)
}

func (suite *AccountServiceTestSuite) TestGetAverageBalance_EmptyHistory() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)
	acct := suite.store.seedAccount(user.UserID, domain.Checking, decimal.NewFromInt(1234), domain.AccountActive)

	avg, err := suite.service.GetAverageBalance(ctx, acct.AccountNumber)

	suite.Require().NoError(err)
	suite.True(avg.Equal(decimal.NewFromInt(1234)))
}

func (suite *AccountServiceTestSuite) TestGetAverageBalance_WalksHistoryFromCurrentBalance() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)
	acct := suite.store.seedAccount(user.UserID, domain.Checking, decimal.NewFromInt(1000), domain.AccountActive)

	// Deposit 200 then withdraw 100; final balance is 1100. The running total
	// is seeded from the current balance: 1100+200=1300, then 1300-100=1200,
	// so the average is (1300+1200)/2 = 1250.
	_, err := suite.ledger.Deposit(ctx, acct.AccountNumber, decimal.NewFromInt(200))
	suite.Require().NoError(err)
	_, err = suite.ledger.Withdraw(ctx, acct.AccountNumber, decimal.NewFromInt(100))
	suite.Require().NoError(err)

	avg, err := suite.service.GetAverageBalance(ctx, acct.AccountNumber)

	suite.Require().NoError(err)
	suite.True(avg.Equal(decimal.NewFromInt(1250)), "got %s", avg)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByUser() {
	ctx := context.Background()
	user := suite.store.seedUser(domain.UserActive)
	suite.store.seedAccount(user.UserID, domain.Checking, decimal.Zero, domain.AccountActive)
	suite.store.seedAccount(user.UserID, domain.Savings, decimal.NewFromInt(500), domain.AccountActive)
	other := suite.store.seedUser(domain.UserActive)
	suite.store.seedAccount(other.UserID, domain.Checking, decimal.Zero, domain.AccountActive)

	accounts, err := suite.service.GetAccountsByUser(ctx, user.UserID)

	suite.Require().NoError(err)
	suite.Len(accounts, 2)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
