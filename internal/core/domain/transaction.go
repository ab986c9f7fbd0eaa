package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the kind of money movement a transaction records.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// TransactionStatus is the outcome of a transaction attempt.
// Every attempt is persisted exactly once with a terminal status; the risk
// monitor may re-open a SUCCESS transaction to PENDING as a flag marker.
type TransactionStatus string

const (
	TxnPending TransactionStatus = "PENDING"
	TxnSuccess TransactionStatus = "SUCCESS"
	TxnFailed  TransactionStatus = "FAILED"
)

// Transaction represents a single attempted money movement. Failed attempts
// are business records too, not errors: the failure reason lives in Description.
type Transaction struct {
	TransactionID string            `json:"transactionID"`         // Primary Key (e.g., UUID)
	Type          TransactionType   `json:"type"`                  // DEPOSIT, WITHDRAWAL or TRANSFER
	FromAccount   string            `json:"fromAccount,omitempty"` // Empty for DEPOSIT
	ToAccount     string            `json:"toAccount,omitempty"`   // Empty for WITHDRAWAL
	Amount        decimal.Decimal   `json:"amount"`                // Strictly positive once validated
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"` // Outcome note or monitor annotation
	Timestamp     time.Time         `json:"timestamp"`   // Creation time, immutable
}
