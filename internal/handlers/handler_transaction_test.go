package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
	portssvc "github.com/rsinghcodes/banking_system/internal/core/ports/services"
	"github.com/rsinghcodes/banking_system/internal/dto"
	"github.com/rsinghcodes/banking_system/internal/handlers"
	"github.com/rsinghcodes/banking_system/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, toAccount string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, toAccount, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, fromAccount string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, fromAccount, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, fromAccount, toAccount, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransactionsOfAccount(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
	jwtSecret  string
}

func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "banking-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedger = new(MockLedgerService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	rate, err := limiter.NewRateFromFormatted("100-M")
	suite.Require().NoError(err)
	rateLimiter := limiter.New(memory.NewStore(), rate)

	container := &portssvc.ServiceContainer{Ledger: suite.mockLedger}
	handlers.RegisterRoutes(suite.router, cfg, container, rateLimiter)
}

func (suite *TransactionHandlerTestSuite) postJSON(path string, body any, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestDeposit_Success() {
	userID := uuid.NewString()
	toAccount := "ACCT-20250101-00001"
	amount := decimal.NewFromInt(250)

	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Deposit,
		ToAccount:     toAccount,
		Amount:        amount,
		Status:        domain.TxnSuccess,
		Description:   "Deposited 250",
		Timestamp:     time.Now(),
	}
	suite.mockLedger.On("Deposit", mock.Anything, toAccount, mock.AnythingOfType("decimal.Decimal")).
		Return(expected, nil).Once()

	w := suite.postJSON("/api/v1/transactions/deposit",
		dto.DepositRequest{ToAccount: toAccount, Amount: amount},
		suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal(domain.TxnSuccess, resp.Status)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestWithdraw_FailedRecordStillCreated() {
	userID := uuid.NewString()
	fromAccount := "ACCT-20250101-00001"
	amount := decimal.NewFromInt(999999)

	// A business-rule violation is a record, not an HTTP error.
	failed := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.Withdrawal,
		FromAccount:   fromAccount,
		Amount:        amount,
		Status:        domain.TxnFailed,
		Description:   "insufficient funds",
		Timestamp:     time.Now(),
	}
	suite.mockLedger.On("Withdraw", mock.Anything, fromAccount, mock.AnythingOfType("decimal.Decimal")).
		Return(failed, nil).Once()

	w := suite.postJSON("/api/v1/transactions/withdraw",
		dto.WithdrawRequest{FromAccount: fromAccount, Amount: amount},
		suite.generateTestToken(userID))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.TxnFailed, resp.Status)
	suite.Equal("insufficient funds", resp.Description)
}

func (suite *TransactionHandlerTestSuite) TestTransfer_MissingToken() {
	w := suite.postJSON("/api/v1/transactions/transfer",
		dto.TransferRequest{FromAccount: "A", ToAccount: "B", Amount: decimal.NewFromInt(1)},
		"")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Transfer")
}

func (suite *TransactionHandlerTestSuite) TestTransfer_InvalidBody() {
	userID := uuid.NewString()

	w := suite.postJSON("/api/v1/transactions/transfer",
		gin.H{"fromAccount": "A"},
		suite.generateTestToken(userID))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Transfer")
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
