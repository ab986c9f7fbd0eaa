package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
type CreateAccountRequest struct {
	UserID         string             `json:"userID" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS"`
	InitialDeposit decimal.Decimal    `json:"initialDeposit"` // Optional, zero means no opening deposit
}

// UpdateAccountStatusRequest defines the payload for freezing/unfreezing.
type UpdateAccountStatusRequest struct {
	Status domain.AccountStatus `json:"status" binding:"required,oneof=ACTIVE FROZEN"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountNumber string               `json:"accountNumber"`
	UserID        string               `json:"userID"`
	AccountType   domain.AccountType   `json:"accountType"`
	Balance       decimal.Decimal      `json:"balance"`
	Status        domain.AccountStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		UserID:        acc.UserID,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		Status:        acc.Status,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
