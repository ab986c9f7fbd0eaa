package domain

// UserStatus is the lifecycle status of a user.
// Transactions are blocked for accounts owned by an INACTIVE user.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (e.g., UUID)
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never expose the hash in JSON responses
	Status       UserStatus `json:"status"`
	AuditFields
}
