package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the product type of a bank account.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// savingsMinimumBalance is the policy floor for SAVINGS accounts.
var savingsMinimumBalance = decimal.NewFromInt(500)

// MinimumBalance returns the policy minimum balance for the account type.
// Withdrawals and transfers must not leave the balance below this floor.
func (t AccountType) MinimumBalance() decimal.Decimal {
	if t == Savings {
		return savingsMinimumBalance
	}
	return decimal.Zero
}

// AccountStatus is the lifecycle status of an account.
// FROZEN accounts reject all money movement, as source or destination.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountFrozen AccountStatus = "FROZEN"
)

// Account represents a bank account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountNumber string          `json:"accountNumber"` // Primary Key, assigned at creation
	UserID        string          `json:"userID"`        // FK -> users.user_id (owner)
	AccountType   AccountType     `json:"accountType"`   // CHECKING or SAVINGS
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
	AuditFields
}
