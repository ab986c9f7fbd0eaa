package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsinghcodes/banking_system/internal/core/domain"
)

// DepositRequest defines the payload for a deposit.
type DepositRequest struct {
	ToAccount string          `json:"toAccount" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// WithdrawRequest defines the payload for a withdrawal.
type WithdrawRequest struct {
	FromAccount string          `json:"fromAccount" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest defines the payload for a transfer between two accounts.
type TransferRequest struct {
	FromAccount string          `json:"fromAccount" binding:"required"`
	ToAccount   string          `json:"toAccount" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction record.
// Failed attempts are returned the same way as successful ones; the outcome
// lives in Status and Description.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Type          domain.TransactionType   `json:"type"`
	FromAccount   string                   `json:"fromAccount,omitempty"`
	ToAccount     string                   `json:"toAccount,omitempty"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        domain.TransactionStatus `json:"status"`
	Description   string                   `json:"description"`
	Timestamp     time.Time                `json:"timestamp"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		FromAccount:   txn.FromAccount,
		ToAccount:     txn.ToAccount,
		Amount:        txn.Amount,
		Status:        txn.Status,
		Description:   txn.Description,
		Timestamp:     txn.Timestamp,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return res
}
